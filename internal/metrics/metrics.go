package metrics

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// Metrics collects service counters for the /metrics endpoint
type Metrics struct {
	startTime time.Time

	mu sync.Mutex

	chatTotal    int64
	chatSuccess  int64
	chatFallback int64

	entriesAdded   int64
	entriesToggled int64
	toggleMisses   int64

	remindersDue    int64
	remindersMissed int64

	chatLatencies []time.Duration
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

func Default() *Metrics {
	once.Do(func() {
		defaultMetrics = New()
	})
	return defaultMetrics
}

func New() *Metrics {
	return &Metrics{
		startTime:     time.Now(),
		chatLatencies: make([]time.Duration, 0, 1000),
	}
}

// RecordChat counts one chat proxy request; success is false when the
// fallback reply was substituted.
func (m *Metrics) RecordChat(success bool, latency time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.chatTotal++
	if success {
		m.chatSuccess++
	} else {
		m.chatFallback++
	}

	m.chatLatencies = append(m.chatLatencies, latency)
	if len(m.chatLatencies) > 1000 {
		m.chatLatencies = m.chatLatencies[1:]
	}
}

// RecordEntriesAdded counts schedule entries created by one add operation
func (m *Metrics) RecordEntriesAdded(count int) {
	m.mu.Lock()
	m.entriesAdded += int64(count)
	m.mu.Unlock()
}

// RecordToggle counts a toggle request; found is false on an id miss
func (m *Metrics) RecordToggle(found bool) {
	m.mu.Lock()
	m.entriesToggled++
	if !found {
		m.toggleMisses++
	}
	m.mu.Unlock()
}

// RecordReminderScan counts one reminder sweep's findings
func (m *Metrics) RecordReminderScan(due, missed int) {
	m.mu.Lock()
	m.remindersDue += int64(due)
	m.remindersMissed += int64(missed)
	m.mu.Unlock()
}

// Snapshot is a point-in-time JSON view of the counters
type Snapshot struct {
	Uptime          time.Duration `json:"uptime"`
	ChatTotal       int64         `json:"chat_total"`
	ChatSuccess     int64         `json:"chat_success"`
	ChatFallback    int64         `json:"chat_fallback"`
	EntriesAdded    int64         `json:"entries_added"`
	EntriesToggled  int64         `json:"entries_toggled"`
	ToggleMisses    int64         `json:"toggle_misses"`
	RemindersDue    int64         `json:"reminders_due"`
	RemindersMissed int64         `json:"reminders_missed"`
	AvgChatLatency  time.Duration `json:"avg_chat_latency"`
	SuccessRate     float64       `json:"success_rate"`
}

func (m *Metrics) Snapshot() *Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &Snapshot{
		Uptime:          time.Since(m.startTime),
		ChatTotal:       m.chatTotal,
		ChatSuccess:     m.chatSuccess,
		ChatFallback:    m.chatFallback,
		EntriesAdded:    m.entriesAdded,
		EntriesToggled:  m.entriesToggled,
		ToggleMisses:    m.toggleMisses,
		RemindersDue:    m.remindersDue,
		RemindersMissed: m.remindersMissed,
	}

	if s.ChatTotal > 0 {
		s.SuccessRate = float64(s.ChatSuccess) / float64(s.ChatTotal) * 100
	}

	if len(m.chatLatencies) > 0 {
		var total time.Duration
		for _, l := range m.chatLatencies {
			total += l
		}
		s.AvgChatLatency = total / time.Duration(len(m.chatLatencies))
	}

	return s
}

func (m *Metrics) Prometheus() string {
	s := m.Snapshot()

	var sb strings.Builder

	sb.WriteString("# HELP pharmaai_uptime_seconds Time since server start\n")
	sb.WriteString("# TYPE pharmaai_uptime_seconds gauge\n")
	sb.WriteString("pharmaai_uptime_seconds " + strconv.FormatInt(int64(s.Uptime.Seconds()), 10) + "\n\n")

	sb.WriteString("# HELP pharmaai_chat_total Total chat proxy requests\n")
	sb.WriteString("# TYPE pharmaai_chat_total counter\n")
	sb.WriteString("pharmaai_chat_total " + strconv.FormatInt(s.ChatTotal, 10) + "\n\n")

	sb.WriteString("# HELP pharmaai_chat_fallback Chat requests answered with the fallback reply\n")
	sb.WriteString("# TYPE pharmaai_chat_fallback counter\n")
	sb.WriteString("pharmaai_chat_fallback " + strconv.FormatInt(s.ChatFallback, 10) + "\n\n")

	sb.WriteString("# HELP pharmaai_entries_added Schedule entries created\n")
	sb.WriteString("# TYPE pharmaai_entries_added counter\n")
	sb.WriteString("pharmaai_entries_added " + strconv.FormatInt(s.EntriesAdded, 10) + "\n\n")

	sb.WriteString("# HELP pharmaai_entries_toggled Toggle requests received\n")
	sb.WriteString("# TYPE pharmaai_entries_toggled counter\n")
	sb.WriteString("pharmaai_entries_toggled " + strconv.FormatInt(s.EntriesToggled, 10) + "\n\n")

	sb.WriteString("# HELP pharmaai_toggle_misses Toggle requests for unknown entry ids\n")
	sb.WriteString("# TYPE pharmaai_toggle_misses counter\n")
	sb.WriteString("pharmaai_toggle_misses " + strconv.FormatInt(s.ToggleMisses, 10) + "\n\n")

	sb.WriteString("# HELP pharmaai_reminders_due Doses seen due by the reminder runner\n")
	sb.WriteString("# TYPE pharmaai_reminders_due counter\n")
	sb.WriteString("pharmaai_reminders_due " + strconv.FormatInt(s.RemindersDue, 10) + "\n\n")

	sb.WriteString("# HELP pharmaai_reminders_missed Doses seen missed by the reminder runner\n")
	sb.WriteString("# TYPE pharmaai_reminders_missed counter\n")
	sb.WriteString("pharmaai_reminders_missed " + strconv.FormatInt(s.RemindersMissed, 10) + "\n")

	return sb.String()
}
