package game

import (
	"swipe/internal/config"
	"swipe/internal/ecs"
	"swipe/internal/factory"
)

// course keeps the path group stocked with obstacles ahead of the player
// and drops the ones left behind.
type course struct {
	cfg   config.Obstacles
	group *ecs.GameObject

	next    int // index of the next segment to place
	done    bool
	spawned int
	culled  int
}

func newCourse(cfg config.Obstacles, group *ecs.GameObject) *course {
	return &course{cfg: cfg, group: group}
}

func (c *course) segmentStart(i int) float64 { return float64(i) * c.cfg.Repeat }

// advance places every segment starting within Ahead of x and culls
// obstacles more than LimitDistance behind it.
func (c *course) advance(x float64) error {
	for !c.done && c.segmentStart(c.next) <= x+c.cfg.Ahead {
		offset := c.segmentStart(c.next)
		for _, o := range c.cfg.Items {
			obj := factory.NewObstacle(o, offset)
			if obj == nil {
				continue
			}
			if err := c.group.AddChild(obj); err != nil {
				return err
			}
			c.spawned++
		}
		c.next++
		if c.cfg.Repeat <= 0 {
			c.done = true
		}
	}
	c.culled += factory.CullBehind(c.group, x-c.cfg.LimitDistance)
	return nil
}
