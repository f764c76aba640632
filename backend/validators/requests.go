package validators

import (
	"time"

	"readquest/backend/models"
	"readquest/backend/services"

	"github.com/samber/lo"
	"gorm.io/datatypes"
)

type ChapterProgressRequest struct {
	ProgressPercentage *int       `json:"progressPercentage" validate:"required,min=0,max=100"`
	IsCompleted        *bool      `json:"isCompleted"`
	CompletedAt        *time.Time `json:"completedAt"`
}

func (r *ChapterProgressRequest) Update() services.ProgressUpdate {
	return services.ProgressUpdate{
		ProgressPercentage: *r.ProgressPercentage,
		IsCompleted:        r.IsCompleted,
		CompletedAt:        r.CompletedAt,
	}
}

type ChallengeProgressRequest struct {
	Progress *int `json:"progress" validate:"required,min=0"`
}

type AnswerRequest struct {
	QuestionID uint   `json:"questionId" validate:"required"`
	Answer     string `json:"answer"`
}

// QuizAttemptRequest takes either answers to grade or a client-computed result.
type QuizAttemptRequest struct {
	Answers        []AnswerRequest `json:"answers" validate:"omitempty,dive"`
	Score          *int            `json:"score" validate:"omitempty,min=0,max=100"`
	TotalQuestions *int            `json:"totalQuestions" validate:"omitempty,min=1"`
	CorrectAnswers *int            `json:"correctAnswers" validate:"omitempty,min=0"`
	XPEarned       *int            `json:"xpEarned" validate:"omitempty,min=0"`
}

func (r *QuizAttemptRequest) Submission() services.AttemptSubmission {
	return services.AttemptSubmission{
		Answers: lo.Map(r.Answers, func(a AnswerRequest, _ int) services.Answer {
			return services.Answer{QuestionID: a.QuestionID, Answer: a.Answer}
		}),
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		CorrectAnswers: r.CorrectAnswers,
		XPEarned:       r.XPEarned,
	}
}

type AddFriendRequest struct {
	FriendID string `json:"friendId" validate:"required"`
}

type FriendStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted blocked"`
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChapterRequest struct {
	Number      int    `json:"number" validate:"required,min=1"`
	Title       string `json:"title" validate:"required"`
	Content     string `json:"content" validate:"required"`
	Summary     string `json:"summary"`
	ReadingTime *int   `json:"readingTime" validate:"omitempty,min=1"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
	IsLocked    bool   `json:"isLocked"`
}

func (r *ChapterRequest) Model() *models.Chapter {
	return &models.Chapter{
		Number:      r.Number,
		Title:       r.Title,
		Content:     r.Content,
		Summary:     r.Summary,
		ReadingTime: lo.FromPtrOr(r.ReadingTime, 10),
		ImageURL:    r.ImageURL,
		IsLocked:    r.IsLocked,
	}
}

type ChapterPatch struct {
	Number      *int    `json:"number" validate:"omitempty,min=1"`
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Content     *string `json:"content" validate:"omitempty,min=1"`
	Summary     *string `json:"summary"`
	ReadingTime *int    `json:"readingTime" validate:"omitempty,min=1"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url"`
	IsLocked    *bool   `json:"isLocked"`
}

func (p *ChapterPatch) Fields() map[string]interface{} {
	f := map[string]interface{}{}
	setIf(f, "number", p.Number)
	setIf(f, "title", p.Title)
	setIf(f, "content", p.Content)
	setIf(f, "summary", p.Summary)
	setIf(f, "reading_time", p.ReadingTime)
	setIf(f, "image_url", p.ImageURL)
	setIf(f, "is_locked", p.IsLocked)
	return f
}

type GlossaryTermRequest struct {
	Term       string `json:"term" validate:"required"`
	Definition string `json:"definition" validate:"required"`
	Category   string `json:"category" validate:"required"`
	Example    string `json:"example"`
	ChapterRef *int   `json:"chapterRef" validate:"omitempty,min=1"`
}

func (r *GlossaryTermRequest) Model() *models.GlossaryTerm {
	return &models.GlossaryTerm{
		Term:       r.Term,
		Definition: r.Definition,
		Category:   r.Category,
		Example:    r.Example,
		ChapterRef: r.ChapterRef,
	}
}

type GlossaryTermPatch struct {
	Term       *string `json:"term" validate:"omitempty,min=1"`
	Definition *string `json:"definition" validate:"omitempty,min=1"`
	Category   *string `json:"category" validate:"omitempty,min=1"`
	Example    *string `json:"example"`
	ChapterRef *int    `json:"chapterRef" validate:"omitempty,min=1"`
}

func (p *GlossaryTermPatch) Fields() map[string]interface{} {
	f := map[string]interface{}{}
	setIf(f, "term", p.Term)
	setIf(f, "definition", p.Definition)
	setIf(f, "category", p.Category)
	setIf(f, "example", p.Example)
	setIf(f, "chapter_ref", p.ChapterRef)
	return f
}

type QuizRequest struct {
	ChapterID   uint   `json:"chapterId" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	XPReward    *int   `json:"xpReward" validate:"omitempty,min=0"`
}

func (r *QuizRequest) Model() *models.Quiz {
	return &models.Quiz{
		ChapterID:   r.ChapterID,
		Title:       r.Title,
		Description: r.Description,
		XPReward:    lo.FromPtrOr(r.XPReward, 50),
	}
}

type QuizPatch struct {
	ChapterID   *uint   `json:"chapterId" validate:"omitempty,min=1"`
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	XPReward    *int    `json:"xpReward" validate:"omitempty,min=0"`
}

func (p *QuizPatch) Fields() map[string]interface{} {
	f := map[string]interface{}{}
	setIf(f, "chapter_id", p.ChapterID)
	setIf(f, "title", p.Title)
	setIf(f, "description", p.Description)
	setIf(f, "xp_reward", p.XPReward)
	return f
}

type QuestionRequest struct {
	Question      string   `json:"question" validate:"required"`
	Type          string   `json:"type" validate:"required,oneof=multiple_choice true_false"`
	Options       []string `json:"options" validate:"required_if=Type multiple_choice,omitempty,min=2"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
	Explanation   string   `json:"explanation"`
	Points        *int     `json:"points" validate:"omitempty,min=0"`
	Order         int      `json:"order" validate:"min=0"`
}

func (r *QuestionRequest) Model(quizID uint) *models.QuizQuestion {
	return &models.QuizQuestion{
		QuizID:        quizID,
		Question:      r.Question,
		Type:          r.Type,
		Options:       r.Options,
		CorrectAnswer: r.CorrectAnswer,
		Explanation:   r.Explanation,
		Points:        lo.FromPtrOr(r.Points, 10),
		Order:         r.Order,
	}
}

type QuestionPatch struct {
	Question      *string  `json:"question" validate:"omitempty,min=1"`
	Type          *string  `json:"type" validate:"omitempty,oneof=multiple_choice true_false"`
	Options       []string `json:"options" validate:"omitempty,min=2"`
	CorrectAnswer *string  `json:"correctAnswer" validate:"omitempty,min=1"`
	Explanation   *string  `json:"explanation"`
	Points        *int     `json:"points" validate:"omitempty,min=0"`
	Order         *int     `json:"order" validate:"omitempty,min=0"`
}

func (p *QuestionPatch) Fields() map[string]interface{} {
	f := map[string]interface{}{}
	setIf(f, "question", p.Question)
	setIf(f, "type", p.Type)
	if p.Options != nil {
		f["options"] = datatypes.JSONSlice[string](p.Options)
	}
	setIf(f, "correct_answer", p.CorrectAnswer)
	setIf(f, "explanation", p.Explanation)
	setIf(f, "points", p.Points)
	setIf(f, "sort_order", p.Order)
	return f
}

type DailyChallengeRequest struct {
	Title       string                 `json:"title" validate:"required"`
	Description string                 `json:"description"`
	Type        string                 `json:"type" validate:"required"`
	Requirement map[string]interface{} `json:"requirement"`
	XPReward    *int                   `json:"xpReward" validate:"omitempty,min=0"`
	CoinReward  *int                   `json:"coinReward" validate:"omitempty,min=0"`
	Date        time.Time              `json:"date" validate:"required"`
	IsActive    *bool                  `json:"isActive"`
}

func (r *DailyChallengeRequest) Model() *models.DailyChallenge {
	return &models.DailyChallenge{
		Title:       r.Title,
		Description: r.Description,
		Type:        r.Type,
		Requirement: r.Requirement,
		XPReward:    lo.FromPtrOr(r.XPReward, 100),
		CoinReward:  lo.FromPtrOr(r.CoinReward, 0),
		Date:        r.Date,
		IsActive:    lo.FromPtrOr(r.IsActive, true),
	}
}

type WeeklyChallengeRequest struct {
	Title       string                 `json:"title" validate:"required"`
	Description string                 `json:"description"`
	Type        string                 `json:"type" validate:"required"`
	Requirement map[string]interface{} `json:"requirement"`
	XPReward    *int                   `json:"xpReward" validate:"omitempty,min=0"`
	CoinReward  *int                   `json:"coinReward" validate:"omitempty,min=0"`
	BadgeReward *uint                  `json:"badgeReward"`
	StartDate   time.Time              `json:"startDate" validate:"required"`
	EndDate     time.Time              `json:"endDate" validate:"required,gtfield=StartDate"`
	IsActive    *bool                  `json:"isActive"`
}

func (r *WeeklyChallengeRequest) Model() *models.WeeklyChallenge {
	return &models.WeeklyChallenge{
		Title:       r.Title,
		Description: r.Description,
		Type:        r.Type,
		Requirement: r.Requirement,
		XPReward:    lo.FromPtrOr(r.XPReward, 500),
		CoinReward:  lo.FromPtrOr(r.CoinReward, 100),
		BadgeReward: r.BadgeReward,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		IsActive:    lo.FromPtrOr(r.IsActive, true),
	}
}

type BadgeRequest struct {
	Name        string                 `json:"name" validate:"required"`
	Description string                 `json:"description"`
	Icon        string                 `json:"icon"`
	Type        string                 `json:"type" validate:"required,oneof=achievement streak chapter quiz"`
	Requirement map[string]interface{} `json:"requirement"`
	XPReward    *int                   `json:"xpReward" validate:"omitempty,min=0"`
}

func (r *BadgeRequest) Model() *models.Badge {
	return &models.Badge{
		Name:        r.Name,
		Description: r.Description,
		Icon:        r.Icon,
		Type:        r.Type,
		Requirement: r.Requirement,
		XPReward:    lo.FromPtrOr(r.XPReward, 0),
	}
}

type AwardBadgeRequest struct {
	UserID string `json:"userId" validate:"required"`
}

func setIf[T any](fields map[string]interface{}, column string, v *T) {
	if v != nil {
		fields[column] = *v
	}
}
