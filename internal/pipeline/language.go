package pipeline

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// supported lists the response languages, fallback first.
var supported = []language.Tag{
	language.English,
	language.Portuguese,
	language.Spanish,
}

var matcher = language.NewMatcher(supported)

// stopwords maps candidate languages to their most frequent function words.
// Counting hits is enough to separate en/pt/es at question length; anything
// inconclusive falls back to English via the matcher.
var stopwords = map[language.Tag][]string{
	language.English: {
		"the", "what", "is", "are", "my", "of", "how", "many", "much",
		"an", "do", "does", "in", "for", "with", "company", "salary", "employee", "which",
	},
	language.Portuguese: {
		"o", "os", "as", "um", "uma", "qual", "quais", "quanto", "quantos",
		"do", "da", "dos", "das", "é", "são", "não", "meu", "minha",
		"salário", "funcionário", "empresa", "como", "para", "em",
	},
	language.Spanish: {
		"el", "los", "las", "un", "una", "cuál", "cuánto", "cuántos",
		"del", "es", "son", "mi", "salario", "empleado", "empresa",
		"cómo", "qué", "cuales", "hay", "cuanto",
	},
}

// Detect guesses the question's language from stopword frequency and resolves
// it against the supported set. Empty or inconclusive input yields English.
func Detect(text string) language.Tag {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(words) == 0 {
		return language.English
	}

	scores := make(map[language.Tag]int, len(stopwords))
	for tag, list := range stopwords {
		set := make(map[string]bool, len(list))
		for _, w := range list {
			set[w] = true
		}
		for _, w := range words {
			if set[w] {
				scores[tag]++
			}
		}
	}

	best := language.English
	bestScore := 0
	for _, tag := range supported {
		if scores[tag] > bestScore {
			best = tag
			bestScore = scores[tag]
		}
	}

	tag, _, _ := matcher.Match(best)
	// Matcher may return a regional variant; collapse to the base tag.
	base, _ := tag.Base()
	switch base.String() {
	case "pt":
		return language.Portuguese
	case "es":
		return language.Spanish
	default:
		return language.English
	}
}

// languageName renders the tag as an English language name for the prompt.
func languageName(tag language.Tag) string {
	return display.English.Languages().Name(tag)
}

// Fixed, language-matched messages. These are the only answers produced
// without a model call.

var refusalMessages = map[language.Tag]string{
	language.English:    "I cannot provide that information.",
	language.Portuguese: "Não posso fornecer essa informação.",
	language.Spanish:    "No puedo proporcionar esa información.",
}

var invalidInputMessages = map[language.Tag]string{
	language.English:    "Please provide a question, optionally with a document.",
	language.Portuguese: "Por favor, forneça uma pergunta, opcionalmente com um documento.",
	language.Spanish:    "Por favor, proporcione una pregunta, opcionalmente con un documento.",
}

var questionRequiredMessages = map[language.Tag]string{
	language.English:    "A question is required to interpret the document.",
	language.Portuguese: "É necessária uma pergunta para interpretar o documento.",
	language.Spanish:    "Se necesita una pregunta para interpretar el documento.",
}

var fallbackMessages = map[language.Tag]string{
	language.English:    "Sorry, something went wrong while answering your question. Please try again.",
	language.Portuguese: "Desculpe, ocorreu um erro ao responder sua pergunta. Por favor, tente novamente.",
	language.Spanish:    "Lo sentimos, ocurrió un error al responder su pregunta. Por favor, inténtelo de nuevo.",
}

func refusalMessage(tag language.Tag) string          { return pickMessage(refusalMessages, tag) }
func invalidInputMessage(tag language.Tag) string     { return pickMessage(invalidInputMessages, tag) }
func questionRequiredMessage(tag language.Tag) string { return pickMessage(questionRequiredMessages, tag) }
func fallbackMessage(tag language.Tag) string         { return pickMessage(fallbackMessages, tag) }

func pickMessage(msgs map[language.Tag]string, tag language.Tag) string {
	if msg, ok := msgs[tag]; ok {
		return msg
	}
	return msgs[language.English]
}
