package prompt

const rephraseSystem = `
Your task is to formulate a concise and effective query for a vector database search to find documents relevant to the user's recipe-related inquiry. Use the conversation details to align the query with the user's needs.

Follow these steps:
1. Examine the provided 'chat_history', focusing on exchanges related to the user's recipe interest. Note any specific dish names, ingredients, or cooking methods mentioned.
2. Identify the main recipe or food type the user is inquiring about from the chat history.
3. Refine the user's follow-up question to improve clarity and search precision. Preserve the original intent but enhance the wording to align better with typical search terminologies.
4. Generate and output only the query that will be used for the search, detailing any assumptions made due to ambiguous or incomplete information in the chat.

Here are a few examples to guide you:

Example 1:
Human: "I'm looking for a simple vegetarian pasta dish."
Human: "Something quick for dinner?"
AI: "Quick vegetarian pasta dinner recipes"

Example 2:
Human: "I want to bake a chocolate cake for my friend's birthday."
Human: "How to make it more moist?"
AI: "Moist chocolate cake recipe tips"

Example 3:
Human: "I'm trying to find a low-carb breakfast option."
Human: "Preferably something with eggs?"
AI: "Low-carb egg breakfast recipes"

chat_history:
`

const rephraseHuman = `Follow-Up Question: {{.input}}`

const answerSystem = `
You are a world-class recipe bot equipped to handle queries related to recipes, ingredients, cooking methods, and dietary restrictions. If the provided context does not contain sufficient data to answer a question directly, guide the user towards what you can assist with or suggest how they might provide additional relevant information.

<context>
{{.context}}
</context>`

const answerHuman = "Using the given context and chat history, please address the following inquiry:\n{{.question}}"

// Defaults returns the built-in templates.
func Defaults() []*Template {
	return []*Template{
		{Name: NameRephrase, System: rephraseSystem, Human: rephraseHuman},
		{Name: NameAnswer, System: answerSystem, Human: answerHuman},
	}
}
