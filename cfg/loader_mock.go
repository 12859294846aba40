package cfg

type MockLoader struct{}

func NewMockLoader() (*MockLoader, error) {
	return &MockLoader{}, nil
}

func (yl *MockLoader) Load() (*Config, error) {
	return &Config{
		// App
		App: App{
			Name:    "github-event-tracker",
			Version: "0.0.1",
		},

		// Mysql
		Mysql: Mysql{
			Host:                  "127.0.0.1",
			Password:              "root",
			Username:              "root",
			Port:                  "3306",
			Database:              "github_event_tracker",
			MaxIdleConnection:     10,
			MaxOpenConnection:     100,
			MaxLifeTimeConnection: 3600,
		},

		// GithubApi
		GithubApi: GithubApi{
			AccessToken: "",
			ApiUrl:      DefaultApiUrl,
			UserAgent:   DefaultUserAgent,
		},

		// Tracker
		Tracker: Tracker{
			PollIntervalMs: DefaultPollIntervalMs,
			RequestDelayMs: DefaultRequestDelayMs,
			Repos:          []string{"golang/go", "torvalds/linux"},
		},

		// Kafka
		Kafka: Kafka{
			Brokers: []string{},
			Topic:   "github-events",
		},

		// Server
		Server: Server{
			Port: DefaultServerPort,
		},
	}, nil
}
