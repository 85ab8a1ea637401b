package constants

import "time"

const (
	DatabaseTimeout      = 5 * time.Second
	RequestTimeout       = 30 * time.Second
	PortraitFetchTimeout = 10 * time.Second
)

// SQLite allows one writer; a single connection also keeps ":memory:" databases shared.
// The zero lifetimes mean no limit, so that one connection is never recycled and a
// ":memory:" database is not dropped with it.
const (
	DBMaxOpenConns    = 1
	DBMaxIdleConns    = 1
	DBConnMaxLifetime = 0
	DBMaxIdleTime     = 0
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	WSWriteWait      = 10 * time.Second
	WSPongWait       = 60 * time.Second
	WSPingPeriod     = (WSPongWait * 9) / 10
	WSMaxMessageSize = 512
	WSSendBuffer     = 256
)

const (
	MaxPortraitBytes   = 10 << 20
	PortraitFetchBurst = 1
	SessionIDLength    = 12
	SettingsReloadWait = 100 * time.Millisecond
)

var DefaultMatchStyles = []string{"Ladder", "TLC", "Tables", "Submission", "Extreme", "Intergender"}

const DefaultFont = "Arial"

var Fonts = []string{"Arial", "Helvetica", "Times", "Courier", "Comic Sans MS"}

var PortraitExtensions = []string{".png", ".jpg", ".jpeg", ".gif"}
