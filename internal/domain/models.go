// Package domain defines the persistence models for monitoring samples, SEO
// analyses, AI generations and the reserved user/API-usage tables. These
// types are mapped with GORM and form the core data layer of the dashboard.
//
// The record kinds are independent logs: no foreign keys exist between them,
// and url/content_type are free discriminators rather than relations.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// MonitoringSample is one measurement of page load time and memory usage for
// a URL at a point in time. Samples are immutable once created and are only
// removed by a full reset.
//
// Fields:
//   - ID: store-assigned, monotonically increasing surrogate key.
//   - URL: measured page.
//   - LoadTime: page load time in seconds (>= 0).
//   - MemoryUsage: memory footprint in MB (>= 0).
//   - Timestamp: measurement time; defaults to creation time.
type MonitoringSample struct {
	ID          uint      `json:"id"           gorm:"primaryKey;autoIncrement"`
	URL         string    `json:"url"          gorm:"type:varchar(500);not null"`
	LoadTime    float64   `json:"load_time"    gorm:"not null;check:load_time >= 0"`
	MemoryUsage float64   `json:"memory_usage" gorm:"not null;check:memory_usage >= 0"`
	Timestamp   time.Time `json:"timestamp"    gorm:"not null;index:idx_monitoring_ts"`
}

// TableName returns the database table name for MonitoringSample.
func (MonitoringSample) TableName() string { return "monitoring_data" }

// SEOAnalysis is one scored assessment of a URL's search-optimization quality
// plus an ordered list of suggestions. The score is 0–100 in practice but not
// enforced by the schema.
type SEOAnalysis struct {
	ID              uint                        `json:"id"               gorm:"primaryKey;autoIncrement"`
	URL             string                      `json:"url"              gorm:"type:varchar(500);not null"`
	SEOScore        int                         `json:"seo_score"        gorm:"not null"`
	TitleOptimized  bool                        `json:"title_optimized"  gorm:"not null;default:false"`
	MetaDescription string                      `json:"meta_description" gorm:"type:text"`
	Suggestions     datatypes.JSONSlice[string] `json:"suggestions"`
	Timestamp       time.Time                   `json:"timestamp"        gorm:"not null;index:idx_seo_ts"`
}

// TableName returns the database table name for SEOAnalysis.
func (SEOAnalysis) TableName() string { return "seo_analysis" }

// AIGeneration is one request/response pair for placeholder content
// production, tagged by content type and lifecycle status. Status and result
// may change after creation; UpdatedAt is refreshed by GORM on every update.
//
// ContentType holds the requested discriminator as received, so unknown types
// are persisted too (they are served by the fallback strategy).
type AIGeneration struct {
	ID           uint             `json:"id"                      gorm:"primaryKey;autoIncrement"`
	ContentType  ContentType      `json:"content_type"            gorm:"type:varchar(50);not null;index"`
	Prompt       string           `json:"prompt"                  gorm:"type:text;not null"`
	Model        string           `json:"model"                   gorm:"type:varchar(100);not null;default:''"`
	Result       *string          `json:"result"                  gorm:"type:text"`
	Status       GenerationStatus `json:"status"                  gorm:"type:varchar(20);not null;default:'pending';check:status IN ('pending','processing','completed','failed')"`
	ErrorMessage *string          `json:"error_message,omitempty" gorm:"type:text"`
	CreatedAt    time.Time        `json:"created_at"              gorm:"index:idx_generation_created"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// TableName returns the database table name for AIGeneration.
func (AIGeneration) TableName() string { return "ai_generated_content" }

// User is reserved for future authentication. Only the bootstrap account is
// ever written.
type User struct {
	ID           uint      `json:"id"         gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username"   gorm:"type:varchar(64);not null;uniqueIndex"`
	Email        string    `json:"email"      gorm:"type:varchar(120);not null;uniqueIndex"`
	PasswordHash string    `json:"-"          gorm:"type:varchar(256)"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// APIUsage meters one call to a (simulated) model endpoint.
type APIUsage struct {
	ID           uint           `json:"id"                      gorm:"primaryKey;autoIncrement"`
	Endpoint     string         `json:"endpoint"                gorm:"type:varchar(100);not null"`
	Model        string         `json:"model"                   gorm:"type:varchar(100)"`
	TokensUsed   int            `json:"tokens_used"             gorm:"not null;default:0"`
	Cost         float64        `json:"cost"                    gorm:"not null;default:0"`
	ResponseTime float64        `json:"response_time"           gorm:"not null;default:0"`
	Status       APIUsageStatus `json:"status"                  gorm:"type:varchar(16);not null;default:'success';check:status IN ('success','error')"`
	ErrorMessage *string        `json:"error_message,omitempty" gorm:"type:text"`
	CreatedAt    time.Time      `json:"created_at"              gorm:"index:idx_usage_created"`
}

// TableName returns the database table name for APIUsage.
func (APIUsage) TableName() string { return "api_usage" }
