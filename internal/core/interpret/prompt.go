package interpret

const promptPreamble = "You are an AI agent analyzing CSV data. Here is the data:\n"

// BuildPrompt composes the instruction sent to the language model.
// The result is unescaped; quoting for the wire is left to the transport,
// which must encode the whole string exactly once.
func BuildPrompt(flattened, question string) string {
	return promptPreamble + flattened + "\nQuestion: " + question
}
