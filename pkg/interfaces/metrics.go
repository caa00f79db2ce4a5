package interfaces

import (
	"time"

	"github.com/txlens/base-tx-analyzer/pkg/types"
)

// MetricsCollector records operational metrics of the analysis pipeline
type MetricsCollector interface {
	RecordClassification(category types.Category)
	RecordDecodedEvent(kind types.EventKind)
	RecordRPCLatency(operation string, d time.Duration)
	RecordAnalysisError(stage string)
}
