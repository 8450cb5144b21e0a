package inmemdb

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/wiseconnect/core/community"
	"github.com/trezcool/wiseconnect/core/quiz"
)

//go:embed seed.yaml
var defaultSeed []byte

type (
	// Seed is the content loaded into a new DB.
	Seed struct {
		Questions []SeedQuestion `yaml:"questions"`
		Options   []SeedOption   `yaml:"options"`
		Lessons   []SeedLesson   `yaml:"lessons"`
		Steps     []SeedStep     `yaml:"steps"`
		Posts     []SeedPost     `yaml:"posts"`
		Replies   []SeedReply    `yaml:"replies"`
	}

	SeedQuestion struct {
		ID    string `yaml:"id"`
		Text  string `yaml:"text"`
		Type  string `yaml:"type"`
		Order int    `yaml:"order"`
	}

	SeedOption struct {
		ID         string `yaml:"id"`
		QuestionID string `yaml:"questionId"`
		Text       string `yaml:"text"`
		Value      string `yaml:"value"`
		Order      int    `yaml:"order"`
	}

	SeedLesson struct {
		ID               string `yaml:"id"`
		Title            string `yaml:"title"`
		Description      string `yaml:"description"`
		Icon             string `yaml:"icon"`
		Order            int    `yaml:"order"`
		TotalSteps       int    `yaml:"totalSteps"`
		Difficulty       string `yaml:"difficulty"`
		EstimatedMinutes int    `yaml:"estimatedMinutes"`
	}

	SeedStep struct {
		ID       string  `yaml:"id"`
		LessonID string  `yaml:"lessonId"`
		Number   int     `yaml:"number"`
		Title    string  `yaml:"title"`
		Content  string  `yaml:"content"`
		Tip      *string `yaml:"tip"`
		Image    *string `yaml:"image"`
	}

	SeedPost struct {
		ID           string  `yaml:"id"`
		UserID       string  `yaml:"userId"`
		UserName     string  `yaml:"userName"`
		Category     string  `yaml:"category"`
		Title        string  `yaml:"title"`
		Content      string  `yaml:"content"`
		AgeHours     float64 `yaml:"ageHours"`
		RepliesCount int     `yaml:"repliesCount"`
	}

	SeedReply struct {
		ID       string  `yaml:"id"`
		PostID   string  `yaml:"postId"`
		UserID   string  `yaml:"userId"`
		UserName string  `yaml:"userName"`
		Content  string  `yaml:"content"`
		AgeHours float64 `yaml:"ageHours"`
	}
)

// SeedError lists every problem found in a Seed.
type SeedError struct {
	Problems []string
}

func (err *SeedError) Error() string {
	return fmt.Sprintf("invalid seed: %s", strings.Join(err.Problems, "; "))
}

func (err *SeedError) addf(format string, args ...interface{}) {
	err.Problems = append(err.Problems, fmt.Sprintf(format, args...))
}

// LoadSeed reads, decodes and validates the seed file at path, or the embedded seed when path is empty.
func LoadSeed(path string) (*Seed, error) {
	data := defaultSeed
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, errors.Wrapf(err, "reading seed file %q", path)
		}
	}
	return ParseSeed(data)
}

// ParseSeed decodes and validates a YAML seed. Unknown fields are rejected.
func ParseSeed(data []byte) (*Seed, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	seed := new(Seed)
	if err := dec.Decode(seed); err != nil {
		return nil, errors.Wrap(err, "decoding seed")
	}
	if err := ValidateSeed(seed); err != nil {
		return nil, err
	}
	return seed, nil
}

// ValidateSeed checks the referential integrity of a Seed. It returns a *SeedError listing every problem found.
func ValidateSeed(seed *Seed) error {
	var sErr SeedError

	// quiz
	questions := make(map[string]bool, len(seed.Questions))
	var styleQuestions []string
	for _, q := range seed.Questions {
		checkID(&sErr, "question", q.ID, questions)
		switch q.Type {
		case quiz.TypeLiteracy:
		case quiz.TypeLearningStyle:
			styleQuestions = append(styleQuestions, q.ID)
		default:
			sErr.addf("question %q: unknown type %q", q.ID, q.Type)
		}
	}
	if len(styleQuestions) != 1 || styleQuestions[0] != quiz.LearningStyleQuestionID {
		sErr.addf(
			"expected exactly one %s question with id %q, got %v",
			quiz.TypeLearningStyle, quiz.LearningStyleQuestionID, styleQuestions,
		)
	}

	options := make(map[string]bool, len(seed.Options))
	for _, o := range seed.Options {
		checkID(&sErr, "option", o.ID, options)
		if !questions[o.QuestionID] {
			sErr.addf("option %q: unknown question %q", o.ID, o.QuestionID)
		}
		if strings.TrimSpace(o.Value) == "" {
			sErr.addf("option %q: empty value", o.ID)
		}
	}

	// lessons
	lessons := make(map[string]int, len(seed.Lessons)) // id -> totalSteps
	lessonIDs := make(map[string]bool, len(seed.Lessons))
	for _, l := range seed.Lessons {
		checkID(&sErr, "lesson", l.ID, lessonIDs)
		if l.TotalSteps < 1 {
			sErr.addf("lesson %q: totalSteps must be at least 1", l.ID)
		}
		lessons[l.ID] = l.TotalSteps
	}

	steps := make(map[string]bool, len(seed.Steps))
	stepNumbers := make(map[string][]int, len(seed.Lessons))
	for _, s := range seed.Steps {
		checkID(&sErr, "step", s.ID, steps)
		if _, ok := lessons[s.LessonID]; !ok {
			sErr.addf("step %q: unknown lesson %q", s.ID, s.LessonID)
			continue
		}
		stepNumbers[s.LessonID] = append(stepNumbers[s.LessonID], s.Number)
	}
	for _, l := range seed.Lessons {
		nums := stepNumbers[l.ID]
		sort.Ints(nums)
		if len(nums) != l.TotalSteps {
			sErr.addf("lesson %q: has %d steps, want %d", l.ID, len(nums), l.TotalSteps)
			continue
		}
		for i, n := range nums {
			if n != i+1 {
				sErr.addf("lesson %q: step numbers must be 1..%d, got %v", l.ID, l.TotalSteps, nums)
				break
			}
		}
	}

	// community
	posts := make(map[string]bool, len(seed.Posts))
	for _, p := range seed.Posts {
		checkID(&sErr, "post", p.ID, posts)
		if !community.IsValidCategory(p.Category) {
			sErr.addf("post %q: unknown category %q", p.ID, p.Category)
		}
		if p.AgeHours < 0 {
			sErr.addf("post %q: ageHours must not be negative", p.ID)
		}
	}

	replies := make(map[string]bool, len(seed.Replies))
	for _, r := range seed.Replies {
		checkID(&sErr, "reply", r.ID, replies)
		if !posts[r.PostID] {
			sErr.addf("reply %q: unknown post %q", r.ID, r.PostID)
		}
	}

	if len(sErr.Problems) > 0 {
		return &sErr
	}
	return nil
}

func checkID(sErr *SeedError, kind, id string, seen map[string]bool) {
	if strings.TrimSpace(id) == "" {
		sErr.addf("%s with empty id", kind)
		return
	}
	if seen[id] {
		sErr.addf("duplicate %s id %q", kind, id)
	}
	seen[id] = true
}
