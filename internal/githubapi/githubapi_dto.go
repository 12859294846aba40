// Gói githubapi cung cấp một caller cho GitHub events API, để lấy danh sách
// sự kiện công khai của một repository. Nó xử lý xác thực bằng mã thông báo
// truy cập nếu được cung cấp.

package githubapi

import "time"

type Actor struct {
	Login     string `json:"login"`
	AvatarUrl string `json:"avatar_url"`
}

// RawEvent là một sự kiện thô từ endpoint /repos/{owner}/{repo}/events.
// Payload được giữ dạng map lỏng lẻo và chỉ được đọc qua normalizer.
type RawEvent struct {
	Id        string                 `json:"id"`
	Type      string                 `json:"type"`
	Actor     *Actor                 `json:"actor,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	Payload   map[string]interface{} `json:"payload"`
}
