package intent

// Built-in intent names.
const (
	Yes      = "YES"
	No       = "NO"
	Question = "QUESTION"
)

// Example utterances for the built-in intents. Short affirmations, negations
// and emoji count as full replies, so they are listed verbatim.
var (
	yesExamples = []string{
		"yes",
		"yes it does",
		"yes 🙂",
		"yea",
		"yeah",
		"yep",
		"yeppers",
		"yup",
		"sure",
		"absolutely",
		"affirmative",
		"i agree",
		"i think so",
		"it does",
		"👍",
	}

	noExamples = []string{
		"no",
		"no thanks",
		"no 🙁",
		"nah",
		"naw",
		"nope",
		"negative",
		"not really",
		"i disagree",
		"i dont think so",
		"it does not",
		"it doesnt",
		"👎",
	}

	questionExamples = []string{
		"what",
		"what?",
		"wut",
		"why",
		"why though",
		"how",
		"how do i do that",
		"who",
		"where",
		"where is that",
		"do you think thats a good idea",
	}
)

// YesIntent returns the built-in YES intent.
func YesIntent() Intent {
	return mustNew(Yes, yesExamples...)
}

// NoIntent returns the built-in NO intent.
func NoIntent() Intent {
	return mustNew(No, noExamples...)
}

// QuestionIntent returns the built-in QUESTION intent, matching replies that
// answer a question with another question.
func QuestionIntent() Intent {
	return mustNew(Question, questionExamples...)
}

// YesNo returns the candidate set used by yes/no questions.
func YesNo() Set {
	return Set{YesIntent(), NoIntent()}
}

// YesNoQuestion returns the yes/no set extended with QUESTION, for callers
// that want to detect counter-questions instead of retrying on them.
func YesNoQuestion() Set {
	return Set{YesIntent(), NoIntent(), QuestionIntent()}
}

// RegisterBuiltins seeds a registry with the built-in intents.
func RegisterBuiltins(r *Registry) error {
	for _, in := range []Intent{YesIntent(), NoIntent(), QuestionIntent()} {
		if _, err := r.Register(in.Name, in.Examples...); err != nil {
			return err
		}
	}
	return nil
}

// mustNew is for the built-in intents, whose examples are known valid.
func mustNew(name string, examples ...string) Intent {
	in, err := New(name, examples...)
	if err != nil {
		panic(err)
	}
	return in
}
