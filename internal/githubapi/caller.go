// Caller chịu trách nhiệm thực hiện yêu cầu API tới GitHub và giải mã
// danh sách sự kiện thô cho một repository được theo dõi.

package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/thep200/github-event-tracker/cfg"
	reporef "github.com/thep200/github-event-tracker/internal/repo_ref"
	"github.com/thep200/github-event-tracker/pkg/log"
)

// PerPage là số sự kiện tối đa GitHub trả về trong một trang
const PerPage = 100

// FetchError là lỗi khi upstream trả về HTTP status không thành công
type FetchError struct {
	StatusCode int
	Body       string
	Repo       reporef.Ref
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("github api error %d for %s: %s", e.StatusCode, e.Repo, e.Body)
}

type Caller struct {
	Logger log.Logger
	Config *cfg.Config
	client *http.Client
}

func NewCaller(logger log.Logger, config *cfg.Config) *Caller {
	return &Caller{
		Logger: logger,
		Config: config,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Call lấy danh sách sự kiện công khai mới nhất của một repository.
// Chỉ một trang duy nhất được yêu cầu, không phân trang.
func (c *Caller) Call(ctx context.Context, repo reporef.Ref) ([]RawEvent, error) {
	fullUrl := fmt.Sprintf("%s/repos/%s/%s/events?per_page=%d",
		c.Config.GithubApi.ApiUrl, repo.Owner, repo.Name, PerPage)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullUrl, nil)
	if err != nil {
		c.Logger.Error(ctx, "Cannot request: %v", err)
		return nil, err
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.Config.GithubApi.UserAgent)

	if c.Config.GithubApi.AccessToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.Config.GithubApi.AccessToken))
	}

	// Thực hiện request
	resp, err := c.client.Do(req)
	if err != nil {
		c.Logger.Error(ctx, "cannot send request: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if rateRemaining := resp.Header.Get("X-RateLimit-Remaining"); rateRemaining != "" {
		c.Logger.Debug(ctx, "Rate limit remaining: %s", rateRemaining)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Repo:       repo,
		}
	}

	// Giải mã phản hồi. Body không phải danh sách được coi là kết quả rỗng
	var events []RawEvent
	if err := json.Unmarshal(body, &events); err != nil {
		var probe interface{}
		if json.Unmarshal(body, &probe) == nil {
			c.Logger.Warn(ctx, "Non-list response body for %s, treating as empty", repo)
			return []RawEvent{}, nil
		}
		return nil, fmt.Errorf("failed to decode events for %s: %w", repo, err)
	}

	return events, nil
}
