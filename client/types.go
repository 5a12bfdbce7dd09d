package client

import (
	"encoding/json"
	"time"
)

// ------------------------------
// Core domain types and payloads
// ------------------------------

// User is the authenticated account behind the credential.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthResult is returned by login and register. The token is also stored in
// the client's token store as a side effect.
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Session is one conversation. The title may be rewritten by the server once
// a title has been auto-generated after the first exchange.
type Session struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	UserID       string    `json:"userId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	MessageCount int       `json:"messageCount,omitempty"`
}

type createSessionRequest struct {
	Title string `json:"title"`
}

// Role is a message author role.
type Role string

const (
	RoleUser      Role = "USER"
	RoleAssistant Role = "ASSISTANT"
	RoleSystem    Role = "SYSTEM"
)

// Message is immutable once created; ordering within a session is insertion
// order and conversation replay depends on it.
type Message struct {
	ID        string          `json:"id"`
	SessionID string          `json:"sessionId"`
	Role      Role            `json:"role"`
	Content   string          `json:"content"`
	Metadata  map[string]any  `json:"metadata,omitempty"`
	Embedding json.RawMessage `json:"embedding,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// MessagePage is the normalized message-listing result. Messages is never
// nil; a 304 from the server normalizes to an empty page.
type MessagePage struct {
	Messages []Message `json:"messages"`
	Total    int       `json:"total"`
	HasMore  bool      `json:"hasMore"`
}

// ------------------------------
// Chat types
// ------------------------------

// MemoryRetrievalOptions tunes how much memory context the assistant pulls
// into a chat turn.
type MemoryRetrievalOptions struct {
	UseHybridSearch bool    `json:"useHybridSearch,omitempty"`
	MaxMemoryAge    int     `json:"maxMemoryAge,omitempty"`
	IncludeFactors  bool    `json:"includeFactors,omitempty"`
	DiversityLambda float64 `json:"diversityLambda,omitempty"`
	MaxMemories     int     `json:"maxMemories,omitempty"`
}

// ChatOptions are per-message generation knobs. All fields are optional.
type ChatOptions struct {
	Model         string                  `json:"model,omitempty"`
	Temperature   float64                 `json:"temperature,omitempty"`
	MaxTokens     int                     `json:"maxTokens,omitempty"`
	IncludeMemory bool                    `json:"includeMemory,omitempty"`
	MemoryOptions *MemoryRetrievalOptions `json:"memoryOptions,omitempty"`
}

type chatRequest struct {
	Message string       `json:"message"`
	Options *ChatOptions `json:"options,omitempty"`
}

// ChatResult holds one completed exchange: the stored user message and the
// assistant's reply, in that order.
type ChatResult struct {
	Response         string  `json:"response"`
	UserMessage      Message `json:"userMessage"`
	AssistantMessage Message `json:"assistantMessage"`
	SessionID        string  `json:"sessionId"`
}

// StructuredRequest asks the backend for schema-constrained generation.
type StructuredRequest struct {
	Messages []StructuredMessage `json:"messages"`
	Schema   map[string]string   `json:"schema"`
	Options  *ChatOptions        `json:"options,omitempty"`
}

// StructuredMessage is a prompt turn for structured generation.
type StructuredMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ------------------------------
// Memory v1 (legacy) types
// ------------------------------

// MemoryCategory classifies a legacy memory record.
type MemoryCategory string

const (
	CategoryConversation MemoryCategory = "CONVERSATION"
	CategoryFact         MemoryCategory = "FACT"
	CategoryPreference   MemoryCategory = "PREFERENCE"
	CategorySkill        MemoryCategory = "SKILL"
)

// Memory is a legacy (v1) memory record. Importance is advisory.
//
// Deprecated: the v1 subsystem is kept for compatibility only; new code
// should use StoreMemory and QueryMemories.
type Memory struct {
	ID         string         `json:"id"`
	UserID     string         `json:"userId"`
	Content    string         `json:"content"`
	Category   MemoryCategory `json:"memoryType"`
	Importance float64        `json:"importance,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	SessionID  string         `json:"sessionId,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// CreateMemoryRequest holds parameters for a new legacy memory.
type CreateMemoryRequest struct {
	Content    string         `json:"content"`
	Category   MemoryCategory `json:"memoryType"`
	Importance float64        `json:"importance,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	SessionID  string         `json:"sessionId,omitempty"`
}

// ------------------------------
// Memory v2 types
// ------------------------------

// MemoryTier names a storage tier of the v2 subsystem.
type MemoryTier string

const (
	TierSTM   MemoryTier = "stm"
	TierLTM   MemoryTier = "ltm"
	TierCache MemoryTier = "cache"
)

// StoreMemoryRequest writes into the v2 subsystem. The server-side scorer
// assigns importance; BypassSTM writes straight to long-term memory.
type StoreMemoryRequest struct {
	Content      string         `json:"content"`
	Type         string         `json:"type,omitempty"` // episodic, semantic, procedural
	SessionID    string         `json:"sessionId,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	ExplicitSave bool           `json:"explicitSave,omitempty"`
	BypassSTM    bool           `json:"bypassSTM,omitempty"`
	Source       string         `json:"source,omitempty"` // user, agent, tool
}

// StoreResult reports where a stored memory landed.
type StoreResult struct {
	STMID      string  `json:"stmId,omitempty"`
	LTMID      string  `json:"ltmId,omitempty"`
	Importance float64 `json:"importance"`
}

// QueryMemoriesRequest is the v2 retrieval query.
type QueryMemoriesRequest struct {
	Query           string         `json:"query"`
	Limit           int            `json:"limit,omitempty"`
	Category        MemoryCategory `json:"memoryType,omitempty"`
	SessionID       string         `json:"sessionId,omitempty"`
	IncludeFactors  bool           `json:"includeFactors,omitempty"`
	MaxAge          int            `json:"maxAge,omitempty"`
	UseCache        bool           `json:"useCache,omitempty"`
	HybridSearch    bool           `json:"hybridSearch,omitempty"`
	DiversityLambda float64        `json:"diversityLambda,omitempty"`
}

// MemoryContext is a read-only projection built fresh on every query;
// RelevanceScore is query-time only and never persisted.
type MemoryContext struct {
	ID             string         `json:"id"`
	Content        string         `json:"content"`
	Category       MemoryCategory `json:"type"`
	Importance     float64        `json:"importance"`
	RelevanceScore float64        `json:"relevanceScore"`
	Source         MemoryTier     `json:"source"`
	CreatedAt      time.Time      `json:"createdAt"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// SearchStats describes how a v2 query was resolved.
type SearchStats struct {
	STMItems        int     `json:"stmItems"`
	LTMItems        int     `json:"ltmItems"`
	TotalCandidates int     `json:"totalCandidates"`
	ExecutionTime   float64 `json:"executionTime"`
}

// MemoryQueryResult wraps the v2 query response. Memories is never nil.
type MemoryQueryResult struct {
	Memories    []MemoryContext `json:"memories"`
	TotalTokens int             `json:"totalTokens"`
	SearchStats SearchStats     `json:"searchStats"`
	Query       string          `json:"query"`
}

// CompatQueryResult pairs the v2 query result with the legacy search reissued
// for backward compatibility. Either branch may have degraded to empty.
type CompatQueryResult struct {
	V2     *MemoryQueryResult
	Legacy []Memory
}

// PromoteOptions bounds a promotion run.
type PromoteOptions struct {
	MaxPromotions int     `json:"maxPromotions,omitempty"`
	MinImportance float64 `json:"minImportance,omitempty"`
}

// PromotionDetail is the per-item outcome of a promotion run.
type PromotionDetail struct {
	STMID  string `json:"stmId"`
	LTMID  string `json:"ltmId,omitempty"`
	Action string `json:"action"` // promoted, skipped, consolidated, error
	Reason string `json:"reason"`
}

// PromotionResult summarizes an STM→LTM promotion run.
type PromotionResult struct {
	Promoted     int               `json:"promoted"`
	Skipped      int               `json:"skipped"`
	Consolidated int               `json:"consolidated"`
	Errors       int               `json:"errors"`
	Details      []PromotionDetail `json:"details"`
}

// ConsolidateOptions bounds a consolidation run.
type ConsolidateOptions struct {
	MaxAge              int     `json:"maxAge,omitempty"`
	SimilarityThreshold float64 `json:"similarityThreshold,omitempty"`
}

// ConsolidationDetail is the per-cluster outcome of a consolidation run.
type ConsolidationDetail struct {
	ClusterID            string   `json:"clusterId"`
	OriginalMemoryIDs    []string `json:"originalMemoryIds"`
	ConsolidatedMemoryID string   `json:"consolidatedMemoryId,omitempty"`
	Action               string   `json:"action"` // consolidated, preserved, error
	Reason               string   `json:"reason"`
}

// ConsolidationResult summarizes a clustering/merge run.
type ConsolidationResult struct {
	ClustersFound               int                   `json:"clustersFound"`
	MemoriesConsolidated        int                   `json:"memoriesConsolidated"`
	ConsolidatedMemoriesCreated int                   `json:"consolidatedMemoriesCreated"`
	OriginalMemoriesArchived    int                   `json:"originalMemoriesArchived"`
	Errors                      int                   `json:"errors"`
	Details                     []ConsolidationDetail `json:"details"`
}

// STMStats describes the short-term tier.
type STMStats struct {
	TotalItems        int            `json:"totalItems"`
	ItemsByType       map[string]int `json:"itemsByType"`
	AverageImportance float64        `json:"averageImportance"`
}

// LTMTypeStats is a per-category rollup of the long-term tier.
type LTMTypeStats struct {
	MemoryType    string  `json:"memoryType"`
	Count         int     `json:"count"`
	AvgImportance float64 `json:"avgImportance"`
}

// LTMStats describes the long-term tier.
type LTMStats struct {
	TotalMemories  int            `json:"totalMemories"`
	MemoriesByType []LTMTypeStats `json:"memoriesByType"`
}

// CacheStats describes the server-side memory cache.
type CacheStats struct {
	HitRate         float64 `json:"hitRate"`
	TotalEntries    int     `json:"totalEntries"`
	AvgResponseTime float64 `json:"avgResponseTime"`
}

// TelemetryStats describes server-side query telemetry.
type TelemetryStats struct {
	TotalQueries      int     `json:"totalQueries"`
	AvgRelevanceScore float64 `json:"avgRelevanceScore"`
	ErrorRate         float64 `json:"errorRate"`
}

// MemoryStats is the full v2 statistics payload.
type MemoryStats struct {
	Memory struct {
		STM STMStats `json:"stm"`
		LTM LTMStats `json:"ltm"`
	} `json:"memory"`
	Cache     CacheStats     `json:"cache"`
	Telemetry TelemetryStats `json:"telemetry"`
}

// MemoryHealth reports service-by-service health of the v2 subsystem.
// Status is one of healthy, degraded, unhealthy.
type MemoryHealth struct {
	Status   string `json:"status"`
	Services struct {
		Redis     bool `json:"redis"`
		Memory    bool `json:"memory"`
		Cache     bool `json:"cache"`
		Telemetry bool `json:"telemetry"`
	} `json:"services"`
}

// ------------------------------
// Model & health types
// ------------------------------

// AIModel describes one assistant model the backend can serve.
type AIModel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MaxTokens   int    `json:"maxTokens"`
	Pricing     string `json:"pricing"`
}

// ModelList carries the available models plus the server's designated default.
type ModelList struct {
	Models  []AIModel `json:"models"`
	Default string    `json:"default"`
}

// HealthStatus is the bare /health liveness payload (not enveloped).
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Services  *struct {
		Database string `json:"database"`
		Redis    string `json:"redis"`
	} `json:"services,omitempty"`
	Error string `json:"error,omitempty"`
}

// ------------------------------
// Security & audit types
// ------------------------------

// AuditLogEntry is one recorded privileged action.
type AuditLogEntry struct {
	ID           string         `json:"id"`
	UserID       string         `json:"userId"`
	Action       string         `json:"action"`
	Resource     string         `json:"resource"`
	ResourceID   string         `json:"resourceId,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	IPAddress    string         `json:"ipAddress,omitempty"`
	UserAgent    string         `json:"userAgent,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
	Success      bool           `json:"success"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
}

// AuditLogPage is a page of audit entries. Logs is never nil.
type AuditLogPage struct {
	Logs       []AuditLogEntry
	Pagination Pagination
}

// AuditLogOptions filters an audit-log listing. Zero values are omitted.
type AuditLogOptions struct {
	Page      int
	Limit     int
	Action    string
	Resource  string
	StartDate string
	EndDate   string
}

// EncryptResult is the payload of a server-side encrypt call.
type EncryptResult struct {
	Encrypted string `json:"encrypted"`
	Checksum  string `json:"checksum"`
}
