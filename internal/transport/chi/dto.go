package chi

import (
	"time"

	"github.com/23f2000400/student-dropout-prediction/internal/domain/feature"
	"github.com/23f2000400/student-dropout-prediction/internal/domain/notify"
	domstudent "github.com/23f2000400/student-dropout-prediction/internal/domain/student"
	"github.com/23f2000400/student-dropout-prediction/internal/usecase/analytics"
	"github.com/23f2000400/student-dropout-prediction/internal/usecase/importer"
	"github.com/23f2000400/student-dropout-prediction/internal/usecase/predict"
)

// Error response codes.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeStudentNotFound  = "student_not_found"
	codeNotFound         = "not_found"
	codeModelUnavailable = "model_unavailable"
	codeImportFailed     = "import_failed"
	codeInternalError    = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type predictionResponse struct {
	DropoutProbability float64 `json:"dropout_probability"`
	RiskCategory       string  `json:"risk_category"`
	StudentID          string  `json:"student_id,omitempty"`
	Updated            bool    `json:"updated,omitempty"`
	Notifications      int     `json:"notifications_created,omitempty"`
}

type studentResponse struct {
	StudentID    string             `json:"student_id"`
	Name         string             `json:"name"`
	Attributes   map[string]float64 `json:"attributes"`
	RiskScore    float64            `json:"risk_score"`
	RiskCategory string             `json:"risk_category"`
	PredictedAt  time.Time          `json:"predicted_at"`
	CreatedAt    time.Time          `json:"created_at"`
}

type studentListResponse struct {
	Items []studentResponse `json:"items"`
	Total int               `json:"total"`
}

type importResponse struct {
	Created        int               `json:"created"`
	Cleared        int               `json:"cleared"`
	MissingColumns []string          `json:"missing_columns,omitempty"`
	Preview        []studentResponse `json:"preview"`
	Source         string            `json:"source"`
	ImportedAt     time.Time         `json:"imported_at"`
}

type analyticsResponse struct {
	TotalStudents       int            `json:"total_students"`
	ByCategory          map[string]int `json:"by_category"`
	SuccessRate         float64        `json:"success_rate"`
	ActiveInterventions int            `json:"active_interventions"`
}

type notificationResponse struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	Message   string    `json:"message"`
	Kind      string    `json:"kind"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type notificationListResponse struct {
	Items []notificationResponse `json:"items"`
	Total int                    `json:"total"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func predictionToResponse(res predict.Result) predictionResponse {
	return predictionResponse{
		DropoutProbability: res.Probability,
		RiskCategory:       string(res.Category),
		StudentID:          res.StudentID,
		Updated:            res.Updated,
		Notifications:      res.Alerts,
	}
}

func studentToResponse(s domstudent.Student) studentResponse {
	attrs := make(map[string]float64, feature.Count())
	vec := s.Attributes()
	for i, f := range feature.Fields() {
		if i < vec.Len() {
			attrs[f.Key()] = vec[i]
		}
	}
	return studentResponse{
		StudentID:    s.ID(),
		Name:         s.Name(),
		Attributes:   attrs,
		RiskScore:    s.Score().Probability(),
		RiskCategory: string(s.Score().Category()),
		PredictedAt:  time.UnixMilli(s.PredictedAt()).UTC(),
		CreatedAt:    time.UnixMilli(s.CreatedAt()).UTC(),
	}
}

func summaryToResponse(sum importer.Summary) importResponse {
	preview := make([]studentResponse, len(sum.Preview))
	for i, s := range sum.Preview {
		preview[i] = studentToResponse(s)
	}
	return importResponse{
		Created:        sum.Created,
		Cleared:        sum.Cleared,
		MissingColumns: sum.MissingColumns,
		Preview:        preview,
		Source:         sum.SourceName,
		ImportedAt:     time.UnixMilli(sum.ImportedAt).UTC(),
	}
}

func reportToResponse(rep analytics.Report) analyticsResponse {
	byCategory := make(map[string]int, len(rep.ByCategory))
	for k, v := range rep.ByCategory {
		byCategory[string(k)] = v
	}
	return analyticsResponse{
		TotalStudents:       rep.Total,
		ByCategory:          byCategory,
		SuccessRate:         rep.SuccessRate,
		ActiveInterventions: rep.ActiveInterventions,
	}
}

func notificationToResponse(n notify.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID(),
		StudentID: n.StudentID(),
		Message:   n.Message(),
		Kind:      string(n.NotificationKind()),
		Read:      n.Read(),
		CreatedAt: time.UnixMilli(n.CreatedAt()).UTC(),
	}
}
