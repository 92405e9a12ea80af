package pool

import (
	"fmt"
	"strings"
	"time"
)

// Config holds the sizing and eviction settings of a ConnectionPool
type Config struct {
	// MaxTotal is the maximum number of connections (idle and borrowed), negative for no limit
	MaxTotal int
	// MaxIdle is the maximum number of idle connections kept, negative for no limit
	MaxIdle int
	// MinIdle is the number of idle connections the evictor tries to keep
	MinIdle int
	// BlockWhenExhausted makes Borrow wait for a returned connection instead of failing
	BlockWhenExhausted bool
	// MaxWait bounds the wait of a blocking Borrow, zero waits until the context is done
	MaxWait time.Duration
	// TestOnBorrow validates idle connections before handing them out
	TestOnBorrow bool
	// TimeBetweenEvictionRuns enables the idle evictor if positive
	TimeBetweenEvictionRuns time.Duration
	// MinEvictableIdleTime is the idle time after which a connection may be evicted
	MinEvictableIdleTime time.Duration
}

// DefaultConfig returns the default pool configuration
func DefaultConfig() Config {
	return Config{
		MaxTotal:                8,
		MaxIdle:                 8,
		MinIdle:                 0,
		BlockWhenExhausted:      true,
		MaxWait:                 0,
		TestOnBorrow:            false,
		TimeBetweenEvictionRuns: 0,
		MinEvictableIdleTime:    30 * time.Minute,
	}
}

// String returns a formatted string representation of the configuration
func (c Config) String() string {
	var sb strings.Builder

	addField := func(name string, value any) {
		sb.WriteString(fmt.Sprintf("  %-22s: %v\n", name, value))
	}

	addField("Max Total", c.MaxTotal)
	addField("Max Idle", c.MaxIdle)
	addField("Min Idle", c.MinIdle)
	addField("Block When Exhausted", c.BlockWhenExhausted)
	addField("Max Wait", c.MaxWait)
	addField("Test On Borrow", c.TestOnBorrow)
	addField("Eviction Interval", c.TimeBetweenEvictionRuns)
	addField("Min Evictable Idle", c.MinEvictableIdleTime)

	return sb.String()
}
