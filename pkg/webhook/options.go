package webhook

import (
	"net/http"
	"time"
)

// DeliveryResult contains information about a single delivery attempt.
type DeliveryResult struct {
	Success    bool
	StatusCode int
	Attempt    int
	Duration   time.Duration
	Error      error
}

// DeliveryHook is called after each delivery attempt.
type DeliveryHook func(result DeliveryResult)

type sendOptions struct {
	timeout    time.Duration
	headers    map[string]string
	httpClient *http.Client

	maxRetries      int
	backoffStrategy BackoffStrategy

	signatureSecret string
	deliveryID      string

	circuitBreaker *CircuitBreaker

	onDelivery DeliveryHook
}

func defaultSendOptions() *sendOptions {
	return &sendOptions{
		timeout:         10 * time.Second,
		headers:         make(map[string]string),
		maxRetries:      0,
		backoffStrategy: DefaultBackoffStrategy(),
	}
}

// SendOption is a functional option for configuring webhook sends.
type SendOption func(*sendOptions)

// WithTimeout sets the HTTP request timeout. Default is 10 seconds.
func WithTimeout(timeout time.Duration) SendOption {
	return func(o *sendOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHeader adds a custom header to the webhook request.
func WithHeader(key, value string) SendOption {
	return func(o *sendOptions) {
		if key != "" && value != "" {
			o.headers[key] = value
		}
	}
}

// WithSignatureSecret enables HMAC-SHA256 payload signing with the given
// secret, carried in the X-Signature header.
func WithSignatureSecret(secret string) SendOption {
	return func(o *sendOptions) {
		o.signatureSecret = secret
	}
}

// WithDeliveryID sets the X-Delivery-ID header so receivers can deduplicate.
func WithDeliveryID(id string) SendOption {
	return func(o *sendOptions) {
		o.deliveryID = id
	}
}

// WithMaxRetries sets the maximum number of retry attempts. Default is 0:
// the notification core treats failures as terminal and records them.
func WithMaxRetries(n int) SendOption {
	return func(o *sendOptions) {
		if n >= 0 {
			o.maxRetries = n
		}
	}
}

// WithBackoff sets the backoff strategy used between retries.
func WithBackoff(strategy BackoffStrategy) SendOption {
	return func(o *sendOptions) {
		if strategy != nil {
			o.backoffStrategy = strategy
		}
	}
}

// WithExponentialRetry enables exponential backoff with jitter for
// higher-level redelivery policies built on top of the core.
func WithExponentialRetry(attempts int, initialInterval, maxInterval time.Duration) SendOption {
	return func(o *sendOptions) {
		o.maxRetries = attempts
		o.backoffStrategy = ExponentialBackoff{
			InitialInterval: initialInterval,
			MaxInterval:     maxInterval,
			Multiplier:      2,
			JitterFactor:    0.1,
		}
	}
}

// WithHTTPClient sets a custom HTTP client for the request.
func WithHTTPClient(client *http.Client) SendOption {
	return func(o *sendOptions) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithCircuitBreaker enables circuit breaker protection for the endpoint.
// Reuse the same instance per endpoint so failure state is tracked across
// requests.
func WithCircuitBreaker(cb *CircuitBreaker) SendOption {
	return func(o *sendOptions) {
		o.circuitBreaker = cb
	}
}

// WithOnDelivery sets a callback invoked after each delivery attempt, for
// logging or metrics.
func WithOnDelivery(hook DeliveryHook) SendOption {
	return func(o *sendOptions) {
		o.onDelivery = hook
	}
}
