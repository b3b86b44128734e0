package probe

import (
	"time"

	"github.com/okian/suwen/pkg/metrics"
)

// Outcome labels shared with the upstream request metrics.
const (
	OutcomeOK             = metrics.OutcomeOK
	OutcomeEnvelopeError  = metrics.OutcomeEnvelopeError
	OutcomeTransportError = metrics.OutcomeTransportError
)

// Defaults applied to zero-valued Config fields.
const (
	DefaultWorkers = 4
	DefaultTimeout = 10 * time.Second
	DefaultLang    = "zh-CN"
)

// listLimit keeps list probes small.
const listLimit = "5"
