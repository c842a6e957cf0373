package services

import "strings"

// ChatbotService answers chat messages from a fixed, ordered rule table.
// Rules are evaluated first-match against the lowercased message; there is
// no model call and no conversation state.
type ChatbotService struct {
	rules    []chatRule
	fallback string
}

type chatRule struct {
	keywords []string
	reply    string
}

func NewChatbotService() *ChatbotService {
	return &ChatbotService{
		rules: []chatRule{
			{[]string{"hello"}, "Hello! 👋 I'm your study buddy. How can I help you today?"},
			{[]string{"hi"}, "Hi there! 😊 Ready to boost your productivity?"},
			{[]string{"help"}, "I can help you with:\n• Setting study goals\n• Managing your tasks\n• Tracking your progress\n• Staying motivated\n\nWhat would you like to know?"},
			{[]string{"study tips"}, "Here are some effective study tips:\n• Use the Pomodoro Technique (25min focus + 5min break)\n• Break large tasks into smaller chunks\n• Eliminate distractions\n• Take regular breaks\n• Stay hydrated and get enough sleep"},
			{[]string{"motivation"}, "You're doing great! 🌟 Remember:\n• Every small step counts\n• Progress, not perfection\n• You're capable of amazing things\n• Keep pushing forward!\n\nBelieve in yourself! 💪"},
			{[]string{"focus"}, "To improve focus:\n• Use the Focus Timer on the Timer page\n• Turn off notifications\n• Create a dedicated study space\n• Set clear goals for each session\n• Reward yourself after completing tasks"},
			{[]string{"pomodoro"}, "The Pomodoro Technique is simple:\n1. Choose a task\n2. Set timer for 25 minutes\n3. Work until timer rings\n4. Take a 5-minute break\n5. After 4 pomodoros, take a longer 15-30 min break\n\nTry it on our Timer page!"},
			{[]string{"time management"}, "Effective time management tips:\n• Prioritize tasks using the Eisenhower Matrix\n• Use time blocking\n• Set realistic deadlines\n• Track your time to identify patterns\n• Learn to say no to distractions"},
			{[]string{"tasks"}, "You can manage your tasks on the Tasks page:\n• Create new tasks\n• Set priorities\n• Add images for visual context\n• Mark tasks as complete\n• Filter by status"},
			{[]string{"analytics"}, "Check your Analytics page to:\n• View your total focus time\n• See daily study patterns\n• Track completed tasks\n• Monitor your progress over time"},
			{[]string{"break"}, "Taking breaks is crucial! 🌸\n• Step away from your desk\n• Stretch or do light exercise\n• Hydrate\n• Rest your eyes\n• Clear your mind\n\nYou'll come back refreshed!"},
			{[]string{"stress"}, "Feeling stressed? Try:\n• Deep breathing exercises\n• Short walk or stretch\n• Listen to calming music\n• Talk to someone\n• Remember: It's okay to take breaks!\n\nYou've got this! 💙"},
			{[]string{"goals"}, "Setting effective goals:\n• Make them SMART (Specific, Measurable, Achievable, Relevant, Time-bound)\n• Break big goals into smaller milestones\n• Write them down\n• Review regularly\n• Celebrate your wins!"},
			{[]string{"thank", "thanks"}, "You're welcome! Happy to help! 😊 Keep up the great work!"},
			{[]string{"bye", "goodbye"}, "Goodbye! Come back anytime you need study support. Good luck! 👋"},
			{[]string{"how are you"}, "I'm doing great, thanks for asking! 😊 Ready to help you achieve your study goals!"},
			{[]string{"joke"}, "Why did the student eat their homework? 📚\nBecause the teacher said it was a piece of cake! 😄"},
		},
		fallback: "I'm here to help! You can ask me about:\n• Study tips\n• Time management\n• Motivation\n• Focus techniques\n• Tasks and analytics\n\nOr just say 'help' to see more options! 😊",
	}
}

func (s *ChatbotService) Reply(message string) string {
	lower := strings.ToLower(strings.TrimSpace(message))

	for _, rule := range s.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.reply
			}
		}
	}
	return s.fallback
}
