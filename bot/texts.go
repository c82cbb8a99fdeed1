package bot

// User-facing source-language texts. Everything after onboarding is
// translated on the fly through the localizer; these are the fallbacks.
const (
	startText = "Hello! Welcome to RIDA - Rice Disease AI Assistant developed by ThanksCarbon. 🌿\n\n" +
		"To get started, please tell me which language you'd like me to use for our conversation and for the diagnostic reports.\n\n" +
		"You can simply type the name of the language, for example:\n" +
		"1. `English`\n" +
		"2. `Khmer` or `ខ្មែរ`\n" +
		"3. `Vietnamese` or `Tiếng Việt`.\n" +
		"4. Or any other language\n\n" +
		"I'll do my best to provide answers and reports in your chosen language!"

	helpText = "Here's how I can help you:\n\n" +
		"📸 Analyze a Photo\n" +
		"Send me a photo of a rice plant, and I'll analyze it for diseases and provide a detailed report.\n\n" +
		"💬 Ask a Question\n" +
		"You can ask me questions about a report or general questions about rice plant health.\n\n" +
		"Here are the available commands:\n" +
		"1. /start - Start the bot.\n" +
		"2. /language - Switch to a different language.\n" +
		"3. /clear - Reset our conversation history.\n" +
		"4. /help - Show this help message again.\n" +
		"5. /cancel - Stop the language change operation."

	needLanguageText = "Hello there! To get started, we first need to set a language.\n\n" +
		"You can simply type the name of the language, for example:\n" +
		"1. `English`\n" +
		"2. `Khmer` or `ខ្មែរ`\n" +
		"3. `Vietnamese` or `Tiếng Việt`.\n" +
		"4. Or any other language\n" +
		"I'll do my best to provide answers and reports in your chosen language!"

	needStartText = "Hello there! To get started, we first need to set a language.\n\n" +
		"Please tap or type /start to begin."

	cancelText = "No problem! The language selection has been cancelled. How can I help you now?"

	chooseLanguageText = "Sure, what language would you like to use?"

	welcomeTemplate = "Hi {user_mention}! I am RIDA - Rice Disease AI Assistant.\n\n" +
		"📸 Send me a photo of a rice plant, and I'll analyze it for diseases and provide a detailed report.\n" +
		"💬 You can ask me questions about a generated report or general questions about rice plant health."

	clearedTemplate = "Done! Our conversation history has been cleared. I'm ready for new questions in {language}."

	clearedNoLanguageText = "Our conversation history has been cleared. ✨\n" +
		"Please use /start to begin a new conversation and set your language."

	resetNoticeText = "To keep our conversation fresh and accurate, I have automatically cleared our chat history. I'm ready for new questions!"

	analyzingText = "Analyzing your image... 🔬"
	thinkingText  = "Thinking... 🧠"

	noResponseText    = "Sorry, I couldn't generate a response."
	emptyResponseText = "Sorry, I received an empty response."

	imageErrorText = "I'm sorry, I encountered an issue while analyzing your image. It might be a temporary problem.\n\n" +
		"Could you please try sending it again? If the issue persists, the file might be corrupted."
)
