package transport

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/goliatone/go-cmis/core"
	"github.com/goliatone/go-cmis/ratelimit"
)

// ThrottledHTTPInvoker consults a rate-limit policy keyed by request host
// before delegating, and feeds every response back into the policy.
type ThrottledHTTPInvoker struct {
	Next   core.HTTPInvoker
	Policy *ratelimit.AdaptivePolicy
}

func NewThrottledHTTPInvoker(next core.HTTPInvoker, policy *ratelimit.AdaptivePolicy) *ThrottledHTTPInvoker {
	if next == nil {
		next = NewDefaultHTTPInvoker(nil)
	}
	if policy == nil {
		policy = ratelimit.NewAdaptivePolicy(nil)
	}
	return &ThrottledHTTPInvoker{Next: next, Policy: policy}
}

func (i *ThrottledHTTPInvoker) Invoke(
	ctx context.Context,
	session *core.Session,
	req core.InvokeRequest,
) (core.InvokeResponse, error) {
	if i == nil || i.Next == nil {
		return core.InvokeResponse{}, errors.New("transport: throttled invoker requires a delegate")
	}
	endpoint := endpointKey(req.URL)
	if err := i.Policy.BeforeCall(ctx, endpoint); err != nil {
		var throttled ratelimit.ThrottledError
		if errors.As(err, &throttled) {
			return core.InvokeResponse{}, throttled.ToError()
		}
		return core.InvokeResponse{}, err
	}

	res, err := i.Next.Invoke(ctx, session, req)
	if err != nil {
		return res, err
	}
	if policyErr := i.Policy.AfterCall(ctx, endpoint, res); policyErr != nil {
		return res, policyErr
	}
	return res, nil
}

func endpointKey(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" {
		return strings.TrimSpace(rawURL)
	}
	return parsed.Host
}
