package storage

// User is created on first sign-in sync and never deleted.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ClerkID  string `json:"clerkId"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Generation status values written by the question-generation pipeline.
const (
	GenerationPending   = "pending"
	GenerationSucceeded = "succeeded"
	GenerationFailed    = "failed"
)

type Job struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Company         string `json:"company"`
	Description     string `json:"description"`
	Skills          string `json:"skills"`
	Experience      string `json:"experience"`
	IdealProfile    string `json:"idealProfile"`
	CreatedBy       string `json:"createdBy"`
	CreatedAt       int64  `json:"createdAt"` // epoch milliseconds
	GenerationState string `json:"generationStatus"`
	GenerationError string `json:"generationError,omitempty"`
}

// Candidate carries the optional analysis result. The four analysis fields
// are written together in a single update or not at all.
type Candidate struct {
	ID             string   `json:"id"`
	JobID          string   `json:"jobId"`
	Name           string   `json:"name"`
	Whatsapp       string   `json:"whatsapp"`
	Email          string   `json:"email"`
	CreatedAt      int64    `json:"createdAt"`
	Score          *int     `json:"score,omitempty"`
	Strengths      []string `json:"strengths,omitempty"`
	Weaknesses     []string `json:"weaknesses,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// Analyzed reports whether the analysis pipeline has completed for c.
func (c *Candidate) Analyzed() bool {
	return c.Score != nil
}

// QuestionTypeText is the only type the generation pipeline emits today.
// The multiple-choice variant (with Options) is reserved for manual authoring.
const QuestionTypeText = "text"

type Question struct {
	ID        string   `json:"id"`
	JobID     string   `json:"jobId"`
	Question  string   `json:"question"`
	Type      string   `json:"type"`
	Options   []string `json:"options,omitempty"`
	CreatedAt int64    `json:"createdAt"`
}

type Answer struct {
	ID          string `json:"id"`
	CandidateID string `json:"candidateId"`
	QuestionID  string `json:"questionId"`
	Answer      string `json:"answer"`
	Score       *int   `json:"score,omitempty"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn in the append-only (job, user) chat log.
type ChatMessage struct {
	ID        string `json:"id"`
	JobID     string `json:"jobId"`
	UserID    string `json:"userId"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"`
}
