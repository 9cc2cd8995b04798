package weather

import "github.com/sirupsen/logrus"

// Snapshot is the persisted fog block. Fields are pointers so a partial
// block from an older save can be told apart from zero values.
type Snapshot struct {
	ScrollOrigin *Vec2    `json:"scrollOrigin,omitempty"`
	Current      *Color   `json:"current,omitempty"`
	Target       *Color   `json:"target,omitempty"`
	Remaining    *int     `json:"remaining,omitempty"`
	Time         *float64 `json:"time,omitempty"`
}

// Snapshot captures the state needed to resume after a load
func (c *Controller) Snapshot() *Snapshot {
	scroll := c.scroll.Origin
	current := c.current
	target := c.target
	remaining := c.remaining
	t := c.time
	return &Snapshot{
		ScrollOrigin: &scroll,
		Current:      &current,
		Target:       &target,
		Remaining:    &remaining,
		Time:         &t,
	}
}

// Restore replaces the controller state with s. A nil snapshot restores
// the default state; one missing its fade fields restores an inactive fog.
func (c *Controller) Restore(s *Snapshot) {
	c.current = White.WithAlpha(0)
	c.target = White.WithAlpha(0)
	c.remaining = 0
	c.override = Override{}
	c.scroll.Forget()

	if s == nil {
		log.Debug("no fog block in save, fog inactive")
		c.scroll.Origin = Vec2{}
		c.time = 0
		c.refreshState()
		c.syncPipeline()
		return
	}

	if s.ScrollOrigin != nil {
		c.scroll.Origin = *s.ScrollOrigin
	}
	if s.Time != nil {
		c.time = *s.Time
	}

	switch {
	case s.Current == nil || s.Target == nil:
		log.Warn("partial fog block in save, fog inactive")
	case !s.Current.valid() || !s.Target.valid():
		log.WithFields(logrus.Fields{"current": *s.Current, "target": *s.Target}).Warn("corrupt fog colours in save, fog inactive")
	default:
		c.current = s.Current.sanitize()
		c.target = s.Target.sanitize()
		if s.Remaining != nil && *s.Remaining > 0 {
			c.remaining = *s.Remaining
		}
	}

	c.refreshState()
	c.syncPipeline()
}

// ScrollOriginValue returns the scroll origin or zero when absent
func (s *Snapshot) ScrollOriginValue() Vec2 {
	if s == nil || s.ScrollOrigin == nil {
		return Vec2{}
	}
	return *s.ScrollOrigin
}
