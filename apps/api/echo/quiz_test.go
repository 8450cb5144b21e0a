package echoapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/wiseconnect/core/quiz"
	"github.com/trezcool/wiseconnect/core/user"
)

func Test_quizApi_questions(t *testing.T) {
	app, env := setup(t)

	questions, err := env.QuizRepo.ListQuestions(context.Background())
	require.NoError(t, err)

	req, rec := newRequest(http.MethodGet, "/api/quiz/questions")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, questions)}, rec)

	var got []quiz.QuestionWithOptions
	unmarchall(t, rec.Body.Bytes(), &got)
	require.Len(t, got, 4)
	for i, q := range got {
		assert.Equal(t, i+1, q.OrderIndex)
		assert.Len(t, q.Options, 3)
	}
}

func Test_quizApi_submit(t *testing.T) {
	answers := func(values ...string) []quiz.Answer {
		ids := []string{"q1", "q2", "q3", "q4"}
		res := make([]quiz.Answer, 0, len(values))
		for i, v := range values {
			res = append(res, quiz.Answer{QuestionID: ids[i], SelectedValue: v})
		}
		return res
	}

	tests := []struct {
		name      string
		body      quiz.Submission
		wantLevel string
		wantStyle string
	}{
		{
			name:      "advanced + auditory",
			body:      quiz.Submission{UserName: "Pat", Answers: answers("advanced", "advanced", "intermediate", "auditory")},
			wantLevel: user.LevelAdvanced,
			wantStyle: user.StyleAuditory,
		},
		{
			name:      "all beginner",
			body:      quiz.Submission{UserName: "Sam", Answers: answers("beginner", "beginner", "beginner", "visual")},
			wantLevel: user.LevelBeginner,
			wantStyle: user.StyleVisual,
		},
		{
			name:      "no learning style answer",
			body:      quiz.Submission{UserName: "Lee", Answers: answers("intermediate", "intermediate", "intermediate")},
			wantLevel: user.LevelIntermediate,
			wantStyle: user.StyleMixed,
		},
		{
			name:      "empty answer values",
			body:      quiz.Submission{UserName: "Ann", Answers: answers("", "", "", "")},
			wantLevel: user.LevelBeginner,
			wantStyle: user.StyleMixed,
		},
		{
			name:      "empty learning style answer",
			body:      quiz.Submission{UserName: "Bo", Answers: answers("advanced", "advanced", "advanced", "")},
			wantLevel: user.LevelAdvanced,
			wantStyle: user.StyleMixed,
		},
		{
			name:      "no answers",
			body:      quiz.Submission{UserName: "Max", Answers: []quiz.Answer{}},
			wantLevel: user.LevelBeginner,
			wantStyle: user.StyleMixed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, env := setup(t)

			req, rec := newRequest(http.MethodPost, "/api/quiz/submit", marchallObj(t, tt.body))
			app.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var res quiz.Result
			unmarchall(t, rec.Body.Bytes(), &res)
			assert.NotEmpty(t, res.UserID)
			assert.Equal(t, tt.body.UserName, res.Name)
			assert.Equal(t, tt.wantLevel, res.DigitalLiteracyLevel)
			assert.Equal(t, tt.wantStyle, res.LearningStyle)

			usr, err := env.UserRepo.GetUserByID(context.Background(), res.UserID)
			require.NoError(t, err)
			assert.True(t, usr.QuizCompleted)
			assert.Equal(t, user.TextSizeLarge, usr.TextSizePreference)
			assert.False(t, usr.HighContrastMode)
			assert.Nil(t, usr.Email)
			if assert.NotNil(t, usr.DigitalLiteracyLevel) {
				assert.Equal(t, tt.wantLevel, *usr.DigitalLiteracyLevel)
			}
			if assert.NotNil(t, usr.LearningStyle) {
				assert.Equal(t, tt.wantStyle, *usr.LearningStyle)
			}

			assert.Equal(t, float64(1), testutil.ToFloat64(env.Metrics.QuizSubmissions.WithLabelValues(tt.wantLevel)))
		})
	}
}

func Test_quizApi_submit_emptyValues(t *testing.T) {
	app, _ := setup(t)

	req, rec := newRequest(http.MethodPost, "/api/quiz/submit",
		[]byte(`{"userName": "Pat", "answers": [{"questionId": "q1", "selectedValue": ""}, {"questionId": "q4", "selectedValue": ""}]}`))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res quiz.Result
	unmarchall(t, rec.Body.Bytes(), &res)
	assert.Equal(t, user.LevelBeginner, res.DigitalLiteracyLevel)
	assert.Equal(t, user.StyleMixed, res.LearningStyle)
}

func Test_quizApi_submit_invalid(t *testing.T) {
	app, _ := setup(t)

	tests := []httpTest{
		{
			name:     "malformed json",
			method:   http.MethodPost,
			path:     "/api/quiz/submit",
			body:     []byte(`{"userName": "Pat", "answers": [`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "answers of the wrong type",
			method:   http.MethodPost,
			path:     "/api/quiz/submit",
			body:     []byte(`{"userName": "Pat", "answers": "all of them"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "empty body",
			method:   http.MethodPost,
			path:     "/api/quiz/submit",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "invalid data", Fields: map[string]string{
				"userName": "this field cannot be blank",
				"answers":  "this field is required",
			}}),
		},
		{
			name:     "blank userName",
			method:   http.MethodPost,
			path:     "/api/quiz/submit",
			body:     []byte(`{"userName": "   ", "answers": []}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "invalid data", Fields: map[string]string{
				"userName": "this field cannot be blank",
			}}),
		},
		{
			name:     "answer of the wrong type",
			method:   http.MethodPost,
			path:     "/api/quiz/submit",
			body:     []byte(`{"userName": "Pat", "answers": [{"questionId": "q1", "selectedValue": "advanced"}, "q2"]}`),
			wantCode: http.StatusBadRequest,
		},
	}
	runHTTPTests(t, app, tests)
}
