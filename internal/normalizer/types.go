// Gói normalizer ánh xạ payload sự kiện thô từ GitHub thành một biến thể
// của tập sự kiện đóng. Thuần túy, không I/O, luôn trả về một giá trị.

package normalizer

// EventData là union đóng của các dạng sự kiện đã chuẩn hoá.
// Mọi biến thể đều mang discriminant Type trong JSON.
type EventData interface {
	eventData()
}

type GitRef struct {
	Ref string `json:"ref"`
	Sha string `json:"sha"`
}

type PullRequestInfo struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	State   string `json:"state"`
	Merged  bool   `json:"merged"`
	HtmlUrl string `json:"html_url"`
	Base    GitRef `json:"base"`
	Head    GitRef `json:"head"`
}

type PullRequestEvent struct {
	Type        string          `json:"type"`
	Action      string          `json:"action"`
	PullRequest PullRequestInfo `json:"pull_request"`
}

type IssueInfo struct {
	Number  int      `json:"number"`
	Title   string   `json:"title"`
	State   string   `json:"state"`
	HtmlUrl string   `json:"html_url"`
	Labels  []string `json:"labels,omitempty"`
}

type IssuesEvent struct {
	Type   string    `json:"type"`
	Action string    `json:"action"`
	Issue  IssueInfo `json:"issue"`
}

type IssueRef struct {
	Number        int    `json:"number"`
	HtmlUrl       string `json:"html_url"`
	IsPullRequest bool   `json:"is_pull_request"`
}

type CommentInfo struct {
	Id      int64   `json:"id"`
	Body    *string `json:"body,omitempty"`
	HtmlUrl string  `json:"html_url"`
}

type IssueCommentEvent struct {
	Type    string      `json:"type"`
	Action  string      `json:"action"`
	Issue   IssueRef    `json:"issue"`
	Comment CommentInfo `json:"comment"`
}

type PullRef struct {
	Number  int    `json:"number"`
	HtmlUrl string `json:"html_url"`
}

type ReviewInfo struct {
	State string  `json:"state"`
	Body  *string `json:"body,omitempty"`
}

type PullRequestReviewEvent struct {
	Type        string     `json:"type"`
	Action      string     `json:"action"`
	PullRequest PullRef    `json:"pull_request"`
	Review      ReviewInfo `json:"review"`
}

type ReviewCommentInfo struct {
	Id      int64   `json:"id"`
	Body    *string `json:"body,omitempty"`
	Path    *string `json:"path,omitempty"`
	HtmlUrl string  `json:"html_url"`
}

type PullRequestReviewCommentEvent struct {
	Type        string            `json:"type"`
	Action      string            `json:"action"`
	PullRequest PullRef           `json:"pull_request"`
	Comment     ReviewCommentInfo `json:"comment"`
}

type PushCommit struct {
	Sha     string `json:"sha"`
	Message string `json:"message"`
	Url     string `json:"url"`
}

type PushEvent struct {
	Type        string       `json:"type"`
	Ref         string       `json:"ref"`
	Before      string       `json:"before"`
	Head        string       `json:"head"`
	Commits     []PushCommit `json:"commits"`
	CommitCount int          `json:"commit_count"`
}

type ReleaseInfo struct {
	TagName    string  `json:"tag_name"`
	Name       *string `json:"name,omitempty"`
	Draft      bool    `json:"draft"`
	Prerelease bool    `json:"prerelease"`
	HtmlUrl    string  `json:"html_url"`
}

type ReleaseEvent struct {
	Type    string      `json:"type"`
	Action  string      `json:"action"`
	Release ReleaseInfo `json:"release"`
}

type ForkeeInfo struct {
	FullName string `json:"full_name"`
	HtmlUrl  string `json:"html_url"`
}

type ForkEvent struct {
	Type   string     `json:"type"`
	Forkee ForkeeInfo `json:"forkee"`
}

type WatchEvent struct {
	Type   string `json:"type"`
	Action string `json:"action"`
}

type CreateEvent struct {
	Type    string  `json:"type"`
	RefType string  `json:"ref_type"`
	Ref     *string `json:"ref,omitempty"`
}

type DeleteEvent struct {
	Type    string `json:"type"`
	RefType string `json:"ref_type"`
	Ref     string `json:"ref"`
}

type UnknownRaw struct {
	EventType string  `json:"event_type"`
	Action    *string `json:"action,omitempty"`
}

// UnknownEvent là lối thoát cho mọi sự kiện không ánh xạ được
type UnknownEvent struct {
	Type string     `json:"type"`
	Raw  UnknownRaw `json:"raw"`
}

func (PullRequestEvent) eventData()              {}
func (IssuesEvent) eventData()                   {}
func (IssueCommentEvent) eventData()             {}
func (PullRequestReviewEvent) eventData()        {}
func (PullRequestReviewCommentEvent) eventData() {}
func (PushEvent) eventData()                     {}
func (ReleaseEvent) eventData()                  {}
func (ForkEvent) eventData()                     {}
func (WatchEvent) eventData()                    {}
func (CreateEvent) eventData()                   {}
func (DeleteEvent) eventData()                   {}
func (UnknownEvent) eventData()                  {}
