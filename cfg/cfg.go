package cfg

type (
	App struct {
		Name    string
		Version string
	}

	Mysql struct {
		Host                  string
		Port                  string
		Username              string
		Password              string
		Database              string
		MaxIdleConnection     int
		MaxOpenConnection     int
		MaxLifeTimeConnection int
	}

	GithubApi struct {
		AccessToken string
		ApiUrl      string
		UserAgent   string
	}

	Tracker struct {
		PollIntervalMs int
		RequestDelayMs int
		Repos          []string
	}

	Kafka struct {
		Brokers []string
		Topic   string
	}

	Server struct {
		Port int
	}
)

type Config struct {
	App       App
	Mysql     Mysql
	GithubApi GithubApi
	Tracker   Tracker
	Kafka     Kafka
	Server    Server
}

// Giá trị mặc định khi cấu hình bị thiếu hoặc không hợp lệ
const (
	DefaultPollIntervalMs = 300000
	DefaultRequestDelayMs = 200
	DefaultApiUrl         = "https://api.github.com"
	DefaultUserAgent      = "github-event-tracker-worker"
	DefaultServerPort     = 8080
)

// Normalize đưa các giá trị cấu hình số không hợp lệ về mặc định
// thay vì làm chết tiến trình khi khởi động
func (c *Config) Normalize() {
	if c.Tracker.PollIntervalMs <= 0 {
		c.Tracker.PollIntervalMs = DefaultPollIntervalMs
	}
	if c.Tracker.RequestDelayMs < 0 {
		c.Tracker.RequestDelayMs = DefaultRequestDelayMs
	}
	if c.GithubApi.ApiUrl == "" {
		c.GithubApi.ApiUrl = DefaultApiUrl
	}
	if c.GithubApi.UserAgent == "" {
		c.GithubApi.UserAgent = DefaultUserAgent
	}
	if c.Server.Port <= 0 {
		c.Server.Port = DefaultServerPort
	}
}
