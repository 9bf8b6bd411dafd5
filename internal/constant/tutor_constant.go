package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// Character ceilings applied before summarization calls. Silent policy,
	// not an error: longer inputs are cut to the ceiling deterministically.
	MaxTranscriptChars = 5500
	MaxPdfTextChars    = 6000

	// Upload boundary cap, enforced before any pipeline stage runs.
	MaxUploadBytes = 5 * 1024 * 1024

	ChatSystemPrompt = `You are Nova, a friendly study tutor for exam students. Be warm, clear and a little playful. Do NOT use LaTeX or special math formatting; write equations in plain text like a^2 + b^2 = 10. Answer in at least 2 lines and adapt to what the student needs.`

	VideoTutorSystemPrompt = `You are Nova, an expert video tutor. Given a transcript and a user request, answer briefly, clearly, and in simple language. Do NOT use LaTeX; write equations in plain text like a^2 + b^2 = 10.`

	PdfTutorSystemPrompt = `You are Nova, an expert PDF explainer for exam students. Read the extracted text from a PDF and answer the user's request in simple language. Do NOT use LaTeX; write equations in plain text like a^2 + b^2 = 10.`

	// Defaults used when the user supplies no question of their own.
	DefaultVideoQuestion = "Give a clear, concise summary of the video for an exam student."
	DefaultPdfQuestion   = "Give a clear, concise explanation of this PDF for an exam student."
	DefaultImageQuestion = "Describe this image and explain any diagrams or math clearly in plain text."

	// Appended to every image question so vision replies stay plain-text.
	PlainMathInstruction = " Do NOT use LaTeX; write any equations in simple text like a^2 + b^2 = 10."
)

// Fixed user-facing failure messages, one per pipeline outcome. Technical
// detail stays in the server logs.
const (
	MsgMessagesRequired    = "messages array required"
	MsgURLRequired         = "YouTube URL is required."
	MsgNoFileUploaded      = "No file uploaded."
	MsgFileTooLarge        = "File is too large. The limit is 5MB."
	MsgUnsupportedFile     = "Only images and PDFs are supported right now."
	MsgBackendDisconnected = "The tutor backend is disconnected right now. Please try again in a moment."
	MsgYouTubeFailed       = "Could not process this YouTube video right now. Try another link or later."
	MsgTranscriptFailed    = "Transcription failed for this video."
	MsgEmptyTranscript     = "Transcription completed but the text was empty."
	MsgEmptyVideoReply     = "Empty reply from the model for this transcript."
	MsgEmptyChatReply      = "Empty reply from the model."
	MsgEmptyImageReply     = "Empty reply from the model for this image."
	MsgEmptyPdfReply       = "Empty reply from the model for this PDF."
	MsgNoPdfText           = "Could not extract any text from this PDF."
	MsgFileAnalyzeFailed   = "Could not analyze this file right now. Try another one or a smaller size."
	MsgServiceTimeout      = "The AI service took too long to respond. Please try again."
)
