package models

// GuidedQuestion is a prompt of the guided diary
type GuidedQuestion struct {
	ID          int
	Question    string
	Description string
}

var GuidedQuestions = []GuidedQuestion{
	{
		ID:          1,
		Question:    "무슨 일이 있었나요?",
		Description: "누구와, 언제, 어디서, 무슨 일이 있었는지 마치 그때로 돌아간 것처럼 자세히 묘사해볼까요?",
	},
	{
		ID:          2,
		Question:    "그때 나는 어떻게 행동했나요?",
		Description: "손이 떨리거나 식은땀이 나거나 나의 몸에 어떤 변화가 있었는지도 적어보아요.",
	},
	{
		ID:          3,
		Question:    "기분을 깊이 들여다볼까요?",
		Description: "베풀어준 것에 대한 고마움, 안정감이나 어딘가 대한 뿌듯함 혹은 그렇지 못한 서운함, 불확실한 미래에서 오는 두려움, 내 잘못이 아니라는 억울함, 상대에 대한 질투심 등 많은 감정들이 있을 거예요. 떠오르는 감정들을 자유롭게 표현해보세요.",
	},
}

// EmptyGuidedAnswers returns one blank answer per guided question
func EmptyGuidedAnswers() []QuestionAnswer {
	answers := make([]QuestionAnswer, len(GuidedQuestions))
	for i, q := range GuidedQuestions {
		answers[i] = QuestionAnswer{Question: q.Question}
	}
	return answers
}
