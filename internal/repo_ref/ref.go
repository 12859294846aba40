// Gói reporef định nghĩa cặp định danh (owner, name) cho một repository
// được theo dõi và việc phân tích danh sách repository từ cấu hình.

package reporef

import "strings"

type Ref struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

func (r Ref) String() string {
	return r.Owner + "/" + r.Name
}

// Parse phân tích một chuỗi "owner/name" thành Ref.
// Trả về false khi chuỗi không hợp lệ.
func Parse(entry string) (Ref, bool) {
	parts := strings.SplitN(strings.TrimSpace(entry), "/", 2)
	if len(parts) != 2 {
		return Ref{}, false
	}

	ref := Ref{
		Owner: strings.TrimSpace(parts[0]),
		Name:  strings.TrimSpace(parts[1]),
	}
	if ref.Owner == "" || ref.Name == "" {
		return Ref{}, false
	}
	return ref, true
}

// ParseList phân tích danh sách cấu hình thành các Ref hợp lệ.
// Mỗi phần tử có thể chứa nhiều repository phân tách bằng dấu phẩy.
// Các phần tử không hợp lệ bị bỏ qua.
func ParseList(entries []string) []Ref {
	refs := make([]Ref, 0, len(entries))
	for _, entry := range entries {
		for _, item := range strings.Split(entry, ",") {
			if item = strings.TrimSpace(item); item == "" {
				continue
			}
			if ref, ok := Parse(item); ok {
				refs = append(refs, ref)
			}
		}
	}
	return refs
}
