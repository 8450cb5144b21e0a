package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/wiseconnect/core/quiz"
)

type quizRepository struct {
	db *quizTable
}

var _ quiz.Repository = (*quizRepository)(nil)

func NewQuizRepository(db *DB) quiz.Repository {
	return &quizRepository{db: db.quiz}
}

func (repo *quizRepository) ListQuestions(_ context.Context) ([]quiz.QuestionWithOptions, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	byQuestion := make(map[string][]quiz.Option, len(repo.db.questions))
	for _, o := range repo.db.options {
		byQuestion[o.QuestionID] = append(byQuestion[o.QuestionID], *o)
	}

	questions := make([]quiz.QuestionWithOptions, 0, len(repo.db.questions))
	for _, q := range repo.db.questions {
		opts := byQuestion[q.ID]
		if opts == nil {
			opts = []quiz.Option{}
		}
		sort.Slice(opts, func(i, j int) bool { return opts[i].OrderIndex < opts[j].OrderIndex })
		questions = append(questions, quiz.QuestionWithOptions{Question: *q, Options: opts})
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].OrderIndex < questions[j].OrderIndex })
	return questions, nil
}
