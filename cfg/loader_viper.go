package cfg

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

var (
	cfgIns     *Config
	cfgInsOnce sync.Once
	cfgMutex   sync.RWMutex
)

type ViperLoader struct {
	configChangeCallbacks []func(*Config)
}

func NewViperLoader() (*ViperLoader, error) {
	return &ViperLoader{
		configChangeCallbacks: make([]func(*Config), 0),
	}, nil
}

func (yl *ViperLoader) Load() (*Config, error) {
	var err error
	cfgInsOnce.Do(func() {
		err = yl.loadConfig()
		if err == nil && yl.IsWatchChange() {
			viper.WatchConfig()
			viper.OnConfigChange(func(e fsnotify.Event) {
				fmt.Printf("[INFO][CONFIG] Config file changed: %s\n", e.Name)
				yl.reloadConfig()
			})
		}
	})

	if err != nil {
		return nil, err
	}

	cfgMutex.RLock()
	defer cfgMutex.RUnlock()
	return cfgIns, nil
}

func (yl *ViperLoader) IsWatchChange() bool {
	return true
}

func (yl *ViperLoader) RegisterConfigChangeCallback(callback func(*Config)) {
	cfgMutex.Lock()
	yl.configChangeCallbacks = append(yl.configChangeCallbacks, callback)
	cfgMutex.Unlock()
}

func (yl *ViperLoader) loadConfig() error {
	viper.AddConfigPath("cfg/yaml")
	viper.SetConfigName("mode")
	viper.SetConfigType("yaml")

	// Cấu hình số bị thiếu sẽ dùng giá trị mặc định
	viper.SetDefault("Tracker.PollIntervalMs", DefaultPollIntervalMs)
	viper.SetDefault("Tracker.RequestDelayMs", DefaultRequestDelayMs)
	viper.SetDefault("GithubApi.ApiUrl", DefaultApiUrl)
	viper.SetDefault("GithubApi.UserAgent", DefaultUserAgent)
	viper.SetDefault("Server.Port", DefaultServerPort)

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("[ERROR][CONFIG] failed to read config file: %w", err)
	}

	cfg := decodeConfig(viper.GetViper())

	// Assign to the global
	cfgMutex.Lock()
	cfgIns = cfg
	cfgMutex.Unlock()

	return nil
}

func (yl *ViperLoader) reloadConfig() {
	cfg := decodeConfig(viper.GetViper())

	// Update the global instance
	cfgMutex.Lock()
	cfgIns = cfg

	// Notify all registered callbacks
	callbacks := make([]func(*Config), len(yl.configChangeCallbacks))
	copy(callbacks, yl.configChangeCallbacks)
	cfgMutex.Unlock()
	for _, callback := range callbacks {
		go callback(cfg)
	}

	fmt.Println("[INFO][CONFIG] Configuration reloaded successfully")
}

// decodeConfig giải mã cấu hình từ viper. Giá trị số sai kiểu hoặc bị thiếu
// dùng mặc định thay vì làm chết tiến trình khi khởi động.
func decodeConfig(v *viper.Viper) *Config {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		// Các trường giải mã được vẫn giữ nguyên, trường hỏng về mặc định
		fmt.Printf("[WARN][CONFIG] Some config values are malformed and will use defaults: %v\n", err)
	}

	cfg.Tracker.PollIntervalMs = lenientInt(v.Get("Tracker.PollIntervalMs"), DefaultPollIntervalMs)
	cfg.Tracker.RequestDelayMs = lenientInt(v.Get("Tracker.RequestDelayMs"), DefaultRequestDelayMs)
	cfg.Server.Port = lenientInt(v.Get("Server.Port"), DefaultServerPort)
	cfg.Normalize()
	return cfg
}

// lenientInt ép một giá trị cấu hình về int, dùng fallback khi thiếu hoặc sai kiểu
func lenientInt(raw interface{}, fallback int) int {
	if raw == nil {
		return fallback
	}
	value, err := cast.ToIntE(raw)
	if err != nil {
		fmt.Printf("[WARN][CONFIG] %v is not a number, using default %d\n", raw, fallback)
		return fallback
	}
	return value
}
