package telegram_bot

const welcomeText = "🙏 <b>Welcome to the Malayalam Dialogue Collection Bot!</b>\n\n" +
	"📚 <b>About this project:</b>\n" +
	"This bot is part of a research project to create a high-quality dataset of Malayalam dialogues, " +
	"a resource to help improve chatbots and voice assistants for Malayalam speakers.\n\n" +
	"💡 <b>How it works:</b>\n" +
	"1️⃣ <b>Submit dialogues</b>\n" +
	"Use /submit to contribute Malayalam sentences or dialogues. Type only in Malayalam script.\n" +
	"<i>Example:</i>\n" +
	"• \"സുപ്രഭാതം! നിങ്ങൾക്ക് എങ്ങനെ സഹായിക്കാം?\"\n" +
	"• \"എനിക്ക് കേബിള്‍ കണക്ഷന്‍റെ വിശദാംശങ്ങള്‍ വേണം.\"\n\n" +
	"2️⃣ <b>Annotate</b>\n" +
	"Assigned annotators use /annotate to label dialogues with intent, emotion, and topic, " +
	"and /edit to correct a single label.\n\n" +
	"3️⃣ <b>Review</b>\n" +
	"Reviewers use /review to approve or reject annotations.\n\n" +
	"🔎 <b>Track your progress:</b>\n" +
	"Use /stats to see your total submissions.\n\n" +
	"🤝 <b>Thank you for contributing to this research!</b>"

const commandHintText = "Hey, you can't do that! 😅 Here's what you can do:\n\n" +
	"✅ /start – Project info\n" +
	"✅ /submit – Send a Malayalam sentence/dialogue\n" +
	"✅ /stats – Your submission count\n" +
	"✅ /annotate – Label pending dialogues (annotators only)\n" +
	"✅ /review – Review annotations (reviewers only)\n\n" +
	"To begin, send /submit"

const helpText = "📚 Help:\n\n" +
	"/start – Welcome message and consent\n" +
	"/submit – Send a Malayalam sentence or dialogue\n" +
	"/stats – Your submission count\n" +
	"/annotate – Label pending dialogues (annotators only)\n" +
	"/edit <dialogue_id> – Correct a single label (annotators only)\n" +
	"/review – Approve or reject annotations (reviewers only)\n" +
	"/help – This message"
