package sync

// Config holds configuration for the bootstrap load and the scheduled
// refresh.
type Config struct {
	// BatchSize is the maximum number of rows per batched write.
	BatchSize int `mapstructure:"batch_size" default:"500"`
	// Workers is the pool size of the scheduled/bulk refresh.
	Workers int `mapstructure:"workers" default:"10"`
	// FromYear is the first year of the historical bootstrap range.
	FromYear int `mapstructure:"from_year" default:"2020"`
	// ToYear is the last year of the historical bootstrap range (inclusive).
	ToYear int `mapstructure:"to_year" default:"2025"`
	// Bootstrap enables the startup bootstrap load. Even when enabled the
	// load is skipped if countries are already persisted.
	Bootstrap bool `mapstructure:"bootstrap" default:"true"`
	// Cron is the schedule of the yearly refresh (standard 5-field spec).
	Cron string `mapstructure:"cron" default:"0 1 2 1 *"`
	// Timezone is the IANA zone the cron spec is evaluated in.
	Timezone string `mapstructure:"timezone" default:"Asia/Seoul"`
}

// YearRange expands the configured bootstrap range into explicit years.
func (c Config) YearRange() []int {
	if c.ToYear < c.FromYear {
		return nil
	}
	years := make([]int, 0, c.ToYear-c.FromYear+1)
	for y := c.FromYear; y <= c.ToYear; y++ {
		years = append(years, y)
	}
	return years
}
