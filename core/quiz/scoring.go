package quiz

import "github.com/trezcool/wiseconnect/core/user"

var literacyScores = map[string]float64{
	user.LevelBeginner:     0,
	user.LevelIntermediate: 1,
	user.LevelAdvanced:     2,
}

// Score derives the digital literacy level and the learning style from quiz answers.
//
// Every answer to a question other than LearningStyleQuestionID is a literacy answer. Literacy answers score
// beginner=0, intermediate=1, advanced=2 and 0 for any other value. A mean score >= 1.5 is advanced,
// >= 0.5 is intermediate, anything lower (or no literacy answer at all) is beginner.
// The learning style is the value of the first learning style answer, or mixed when it is empty or missing.
func Score(answers []Answer) (level, style string) {
	var total float64
	var count int
	var styleAnswered bool
	for _, a := range answers {
		if a.QuestionID == LearningStyleQuestionID {
			if !styleAnswered {
				style = a.SelectedValue
				styleAnswered = true
			}
			continue
		}
		total += literacyScores[a.SelectedValue]
		count++
	}

	var mean float64
	if count > 0 {
		mean = total / float64(count)
	}
	switch {
	case mean >= 1.5:
		level = user.LevelAdvanced
	case mean >= 0.5:
		level = user.LevelIntermediate
	default:
		level = user.LevelBeginner
	}

	if style == "" {
		style = user.StyleMixed
	}
	return level, style
}
