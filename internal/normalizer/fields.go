package normalizer

// Các hàm đọc trường có kiểm tra trên payload dạng map lỏng lẻo.
// Mọi truy cập trường bắt buộc đều trả về tín hiệu vắng mặt rõ ràng.

func mapField(m map[string]interface{}, key string) (map[string]interface{}, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m[key].(map[string]interface{})
	return v, ok
}

func sliceField(m map[string]interface{}, key string) ([]interface{}, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m[key].([]interface{})
	return v, ok
}

func stringField(m map[string]interface{}, key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m[key].(string)
	return v, ok
}

// stringOr trả về giá trị chuỗi của key hoặc fallback khi vắng mặt
func stringOr(m map[string]interface{}, key, fallback string) string {
	if v, ok := stringField(m, key); ok {
		return v
	}
	return fallback
}

// stringPtr trả về con trỏ chuỗi, nil khi trường vắng mặt.
// Dùng cho các trường optional cần giữ nguyên sự vắng mặt trong JSON.
func stringPtr(m map[string]interface{}, key string) *string {
	if v, ok := stringField(m, key); ok {
		return &v
	}
	return nil
}

// numberField đọc một số JSON, đã được giải mã thành float64
func numberField(m map[string]interface{}, key string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	v, ok := m[key].(float64)
	return v, ok
}

func intOr(m map[string]interface{}, key string, fallback int) int {
	if v, ok := numberField(m, key); ok {
		return int(v)
	}
	return fallback
}

func int64Or(m map[string]interface{}, key string, fallback int64) int64 {
	if v, ok := numberField(m, key); ok {
		return int64(v)
	}
	return fallback
}

func boolOr(m map[string]interface{}, key string, fallback bool) bool {
	if m == nil {
		return fallback
	}
	if v, ok := m[key].(bool); ok {
		return v
	}
	return fallback
}

// normalizeAction kiểm tra giá trị action thuộc tập cho phép
func normalizeAction(value string, allowed ...string) (string, bool) {
	for _, a := range allowed {
		if value == a {
			return value, true
		}
	}
	return "", false
}
