package diagnostic

// Probe names, in execution order.
const (
	ProbeKeyFormat    = "key_format"
	ProbeConnectivity = "connectivity"
	ProbeQuota        = "quota"
)

// Status classifies a probe outcome so callers can branch without parsing Message.
type Status string

const (
	StatusOK              Status = "ok"
	StatusInvalidKey      Status = "invalid_key"
	StatusUnusualFormat   Status = "unusual_format"
	StatusAuthFailure     Status = "auth_failure"
	StatusForbidden       Status = "forbidden"
	StatusRateLimited     Status = "rate_limited"
	StatusQuotaExceeded   Status = "quota_exceeded"
	StatusBadRequest      Status = "bad_request"
	StatusHTTPError       Status = "http_error"
	StatusTimeout         Status = "timeout"
	StatusConnectionError Status = "connection_error"
	StatusUnexpectedError Status = "unexpected_error"
)

// Advisory reports whether the status is a soft failure (format or quota
// related) rather than a hard error.
func (s Status) Advisory() bool {
	switch s {
	case StatusInvalidKey, StatusUnusualFormat, StatusRateLimited, StatusQuotaExceeded:
		return true
	default:
		return false
	}
}

// ProbeResult is the outcome of one probe. Probes always return one; they never
// return an error or panic past their own boundary. Advisory mirrors
// Status.Advisory for failed results.
type ProbeResult struct {
	Name       string `json:"name"`
	Success    bool   `json:"success"`
	Status     Status `json:"status"`
	Message    string `json:"message"`
	Advisory   bool   `json:"advisory"`
	HTTPStatus int    `json:"http_status,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

func passed(name, msg string) ProbeResult {
	return ProbeResult{Name: name, Success: true, Status: StatusOK, Message: msg}
}

func failed(name string, status Status, msg string) ProbeResult {
	return ProbeResult{Name: name, Success: false, Status: status, Message: msg, Advisory: status.Advisory()}
}
