package normalizer

// mappers là bảng điều phối từ chuỗi type thô sang hàm ánh xạ thuần túy.
// Mọi type ngoài bảng này đều trở thành UnknownEvent.
var mappers = map[string]func(map[string]interface{}) EventData{
	"PullRequestEvent":              mapPullRequestEvent,
	"IssuesEvent":                   mapIssuesEvent,
	"IssueCommentEvent":             mapIssueCommentEvent,
	"PullRequestReviewEvent":        mapPullRequestReviewEvent,
	"PullRequestReviewCommentEvent": mapPullRequestReviewCommentEvent,
	"PushEvent":                     mapPushEvent,
	"ReleaseEvent":                  mapReleaseEvent,
	"ForkEvent":                     mapForkEvent,
	"WatchEvent":                    mapWatchEvent,
	"CreateEvent":                   mapCreateEvent,
	"DeleteEvent":                   mapDeleteEvent,
}

// Normalize ánh xạ một sự kiện thô thành một biến thể của union đóng.
// Hàm toàn phần: mọi đầu vào đều cho ra một giá trị, không bao giờ lỗi.
func Normalize(rawType string, payload map[string]interface{}) EventData {
	if payload == nil {
		payload = map[string]interface{}{}
	}

	if mapper, ok := mappers[rawType]; ok {
		return mapper(payload)
	}

	return UnknownEvent{
		Type: "UnknownEvent",
		Raw: UnknownRaw{
			EventType: rawType,
			Action:    stringPtr(payload, "action"),
		},
	}
}

// unknownEvent dùng khi một type đã biết nhưng payload thiếu trường bắt buộc
func unknownEvent(rawType string) EventData {
	return UnknownEvent{
		Type: "UnknownEvent",
		Raw: UnknownRaw{
			EventType: rawType,
		},
	}
}

func mapPullRequestEvent(payload map[string]interface{}) EventData {
	pr, ok := mapField(payload, "pull_request")
	if !ok {
		return unknownEvent("PullRequestEvent")
	}
	number, ok := numberField(pr, "number")
	if !ok {
		return unknownEvent("PullRequestEvent")
	}

	// action "closed" với merged=true được viết lại thành "merged"
	rawAction, _ := stringField(payload, "action")
	merged := boolOr(pr, "merged", false)
	if rawAction == "closed" && merged {
		rawAction = "merged"
	}

	action, ok := normalizeAction(rawAction, "opened", "closed", "reopened", "merged", "labeled", "unlabeled")
	if !ok {
		return unknownEvent("PullRequestEvent")
	}

	base, _ := mapField(pr, "base")
	head, _ := mapField(pr, "head")

	return PullRequestEvent{
		Type:   "PullRequestEvent",
		Action: action,
		PullRequest: PullRequestInfo{
			Number:  int(number),
			Title:   stringOr(pr, "title", ""),
			State:   stringOr(pr, "state", "open"),
			Merged:  merged,
			HtmlUrl: stringOr(pr, "html_url", ""),
			Base: GitRef{
				Ref: stringOr(base, "ref", ""),
				Sha: stringOr(base, "sha", ""),
			},
			Head: GitRef{
				Ref: stringOr(head, "ref", ""),
				Sha: stringOr(head, "sha", ""),
			},
		},
	}
}

func mapIssuesEvent(payload map[string]interface{}) EventData {
	issue, ok := mapField(payload, "issue")
	if !ok {
		return unknownEvent("IssuesEvent")
	}
	rawAction, _ := stringField(payload, "action")
	action, ok := normalizeAction(rawAction, "opened", "closed", "reopened", "labeled", "assigned")
	if !ok {
		return unknownEvent("IssuesEvent")
	}

	// Chỉ giữ lại tên nhãn là chuỗi, bỏ qua khi labels không phải mảng
	var labels []string
	if rawLabels, ok := sliceField(issue, "labels"); ok {
		labels = make([]string, 0, len(rawLabels))
		for _, rawLabel := range rawLabels {
			if label, ok := rawLabel.(map[string]interface{}); ok {
				if name, ok := stringField(label, "name"); ok {
					labels = append(labels, name)
				}
			}
		}
	}

	return IssuesEvent{
		Type:   "IssuesEvent",
		Action: action,
		Issue: IssueInfo{
			Number:  intOr(issue, "number", 0),
			Title:   stringOr(issue, "title", ""),
			State:   stringOr(issue, "state", "open"),
			HtmlUrl: stringOr(issue, "html_url", ""),
			Labels:  labels,
		},
	}
}

func mapIssueCommentEvent(payload map[string]interface{}) EventData {
	issue, issueOk := mapField(payload, "issue")
	comment, commentOk := mapField(payload, "comment")
	rawAction, _ := stringField(payload, "action")
	action, actionOk := normalizeAction(rawAction, "created", "edited", "deleted")
	if !issueOk || !commentOk || !actionOk {
		return unknownEvent("IssueCommentEvent")
	}

	// Bình luận thuộc pull request khi issue.pull_request có mặt
	prMarker, present := issue["pull_request"]
	isPullRequest := present && prMarker != nil

	return IssueCommentEvent{
		Type:   "IssueCommentEvent",
		Action: action,
		Issue: IssueRef{
			Number:        intOr(issue, "number", 0),
			HtmlUrl:       stringOr(issue, "html_url", ""),
			IsPullRequest: isPullRequest,
		},
		Comment: CommentInfo{
			Id:      int64Or(comment, "id", 0),
			Body:    stringPtr(comment, "body"),
			HtmlUrl: stringOr(comment, "html_url", ""),
		},
	}
}

func mapPullRequestReviewEvent(payload map[string]interface{}) EventData {
	review, reviewOk := mapField(payload, "review")
	pr, prOk := mapField(payload, "pull_request")
	rawAction, _ := stringField(payload, "action")
	action, actionOk := normalizeAction(rawAction, "submitted")
	if !reviewOk || !prOk || !actionOk {
		return unknownEvent("PullRequestReviewEvent")
	}

	rawState, _ := stringField(review, "state")
	state, ok := normalizeAction(rawState, "approved", "commented", "changes_requested")
	if !ok {
		state = "commented"
	}

	return PullRequestReviewEvent{
		Type:   "PullRequestReviewEvent",
		Action: action,
		PullRequest: PullRef{
			Number:  intOr(pr, "number", 0),
			HtmlUrl: stringOr(pr, "html_url", ""),
		},
		Review: ReviewInfo{
			State: state,
			Body:  stringPtr(review, "body"),
		},
	}
}

func mapPullRequestReviewCommentEvent(payload map[string]interface{}) EventData {
	comment, commentOk := mapField(payload, "comment")
	pr, prOk := mapField(payload, "pull_request")
	rawAction, _ := stringField(payload, "action")
	action, actionOk := normalizeAction(rawAction, "created", "edited", "deleted")
	if !commentOk || !prOk || !actionOk {
		return unknownEvent("PullRequestReviewCommentEvent")
	}

	return PullRequestReviewCommentEvent{
		Type:   "PullRequestReviewCommentEvent",
		Action: action,
		PullRequest: PullRef{
			Number:  intOr(pr, "number", 0),
			HtmlUrl: stringOr(pr, "html_url", ""),
		},
		Comment: ReviewCommentInfo{
			Id:      int64Or(comment, "id", 0),
			Body:    stringPtr(comment, "body"),
			Path:    stringPtr(comment, "path"),
			HtmlUrl: stringOr(comment, "html_url", ""),
		},
	}
}

func mapPushEvent(payload map[string]interface{}) EventData {
	rawCommits, _ := sliceField(payload, "commits")
	commits := make([]PushCommit, 0, len(rawCommits))
	for _, rawCommit := range rawCommits {
		commit, _ := rawCommit.(map[string]interface{})
		commits = append(commits, PushCommit{
			Sha:     stringOr(commit, "sha", ""),
			Message: stringOr(commit, "message", ""),
			Url:     stringOr(commit, "url", ""),
		})
	}

	return PushEvent{
		Type:        "PushEvent",
		Ref:         stringOr(payload, "ref", ""),
		Before:      stringOr(payload, "before", ""),
		Head:        stringOr(payload, "head", ""),
		Commits:     commits,
		CommitCount: intOr(payload, "size", len(commits)),
	}
}

func mapReleaseEvent(payload map[string]interface{}) EventData {
	release, ok := mapField(payload, "release")
	if !ok {
		return unknownEvent("ReleaseEvent")
	}
	rawAction, _ := stringField(payload, "action")
	action, ok := normalizeAction(rawAction, "published", "created", "edited")
	if !ok {
		return unknownEvent("ReleaseEvent")
	}

	return ReleaseEvent{
		Type:   "ReleaseEvent",
		Action: action,
		Release: ReleaseInfo{
			TagName:    stringOr(release, "tag_name", ""),
			Name:       stringPtr(release, "name"),
			Draft:      boolOr(release, "draft", false),
			Prerelease: boolOr(release, "prerelease", false),
			HtmlUrl:    stringOr(release, "html_url", ""),
		},
	}
}

func mapForkEvent(payload map[string]interface{}) EventData {
	forkee, ok := mapField(payload, "forkee")
	if !ok {
		return unknownEvent("ForkEvent")
	}

	return ForkEvent{
		Type: "ForkEvent",
		Forkee: ForkeeInfo{
			FullName: stringOr(forkee, "full_name", ""),
			HtmlUrl:  stringOr(forkee, "html_url", ""),
		},
	}
}

func mapWatchEvent(payload map[string]interface{}) EventData {
	rawAction, _ := stringField(payload, "action")
	action, ok := normalizeAction(rawAction, "started")
	if !ok {
		return unknownEvent("WatchEvent")
	}

	return WatchEvent{
		Type:   "WatchEvent",
		Action: action,
	}
}

func mapCreateEvent(payload map[string]interface{}) EventData {
	rawRefType, _ := stringField(payload, "ref_type")
	refType, ok := normalizeAction(rawRefType, "repository", "branch", "tag")
	if !ok {
		return unknownEvent("CreateEvent")
	}

	return CreateEvent{
		Type:    "CreateEvent",
		RefType: refType,
		Ref:     stringPtr(payload, "ref"),
	}
}

func mapDeleteEvent(payload map[string]interface{}) EventData {
	rawRefType, _ := stringField(payload, "ref_type")
	refType, ok := normalizeAction(rawRefType, "branch", "tag")
	if !ok {
		return unknownEvent("DeleteEvent")
	}

	// ref mặc định chuỗi rỗng, khác với CreateEvent giữ nguyên vắng mặt.
	// Giữ đúng định dạng dữ liệu đã lưu trong database.
	return DeleteEvent{
		Type:    "DeleteEvent",
		RefType: refType,
		Ref:     stringOr(payload, "ref", ""),
	}
}
