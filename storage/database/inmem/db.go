package inmemdb

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/wiseconnect/core/community"
	"github.com/trezcool/wiseconnect/core/lesson"
	"github.com/trezcool/wiseconnect/core/quiz"
	"github.com/trezcool/wiseconnect/core/user"
)

type (
	// DB is the process-wide in-memory store. Each table has its own lock and no operation holds two locks
	// at once.
	DB struct {
		user      *userTable
		quiz      *quizTable
		lesson    *lessonTable
		progress  *progressTable
		community *communityTable

		now func() time.Time
	}

	userTable struct {
		sync.RWMutex
		rows map[string]*user.User
	}

	quizTable struct {
		sync.RWMutex
		questions map[string]*quiz.Question
		options   map[string]*quiz.Option
	}

	lessonTable struct {
		sync.RWMutex
		lessons map[string]*lesson.Lesson
		steps   map[string]*lesson.Step
	}

	progressKey struct {
		userID   string
		lessonID string
	}

	progressTable struct {
		sync.RWMutex
		rows map[progressKey]*lesson.Progress
	}

	communityTable struct {
		sync.RWMutex
		posts   map[string]*community.Post
		replies map[string]*community.Reply
		postSeq map[string]int // insertion order, breaks createdAt ties
		nextSeq int
	}
)

// Open returns a DB loaded with the seed read from seedFile, or with the embedded seed when seedFile is empty.
func Open(seedFile string) (*DB, error) {
	seed, err := LoadSeed(seedFile)
	if err != nil {
		return nil, errors.Wrap(err, "loading seed")
	}
	db := newDB()
	db.load(seed, db.now())
	return db, nil
}

func newDB() *DB {
	return &DB{
		user: &userTable{rows: make(map[string]*user.User)},
		quiz: &quizTable{
			questions: make(map[string]*quiz.Question),
			options:   make(map[string]*quiz.Option),
		},
		lesson: &lessonTable{
			lessons: make(map[string]*lesson.Lesson),
			steps:   make(map[string]*lesson.Step),
		},
		progress: &progressTable{rows: make(map[progressKey]*lesson.Progress)},
		community: &communityTable{
			posts:   make(map[string]*community.Post),
			replies: make(map[string]*community.Reply),
			postSeq: make(map[string]int),
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

// load inserts a validated seed. Post and reply timestamps are computed relative to now.
func (db *DB) load(seed *Seed, now time.Time) {
	db.quiz.Lock()
	for _, q := range seed.Questions {
		db.quiz.questions[q.ID] = &quiz.Question{
			ID:           q.ID,
			QuestionText: q.Text,
			QuestionType: q.Type,
			OrderIndex:   q.Order,
		}
	}
	for _, o := range seed.Options {
		db.quiz.options[o.ID] = &quiz.Option{
			ID:         o.ID,
			QuestionID: o.QuestionID,
			OptionText: o.Text,
			Value:      o.Value,
			OrderIndex: o.Order,
		}
	}
	db.quiz.Unlock()

	db.lesson.Lock()
	for _, l := range seed.Lessons {
		db.lesson.lessons[l.ID] = &lesson.Lesson{
			ID:               l.ID,
			Title:            l.Title,
			Description:      l.Description,
			IconName:         l.Icon,
			OrderIndex:       l.Order,
			TotalSteps:       l.TotalSteps,
			Difficulty:       l.Difficulty,
			EstimatedMinutes: l.EstimatedMinutes,
		}
	}
	for _, s := range seed.Steps {
		db.lesson.steps[s.ID] = &lesson.Step{
			ID:               s.ID,
			LessonID:         s.LessonID,
			StepNumber:       s.Number,
			Title:            s.Title,
			Content:          s.Content,
			TipText:          s.Tip,
			ImagePlaceholder: s.Image,
		}
	}
	db.lesson.Unlock()

	db.community.Lock()
	for _, p := range seed.Posts {
		db.community.insertPost(&community.Post{
			ID:           p.ID,
			UserID:       p.UserID,
			UserName:     p.UserName,
			Category:     p.Category,
			Title:        p.Title,
			Content:      p.Content,
			CreatedAt:    now.Add(-hours(p.AgeHours)),
			RepliesCount: p.RepliesCount,
		})
	}
	for _, r := range seed.Replies {
		db.community.replies[r.ID] = &community.Reply{
			ID:        r.ID,
			PostID:    r.PostID,
			UserID:    r.UserID,
			UserName:  r.UserName,
			Content:   r.Content,
			CreatedAt: now.Add(-hours(r.AgeHours)),
		}
	}
	db.community.Unlock()
}

func hours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

// insertPost must be called with the write lock held.
func (t *communityTable) insertPost(post *community.Post) {
	t.nextSeq++
	t.posts[post.ID] = post
	t.postSeq[post.ID] = t.nextSeq
}
