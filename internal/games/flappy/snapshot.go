package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// ObstacleView is the pair of segment rectangles for one obstacle.
type ObstacleView struct {
	Top    core.RectF
	Bottom core.RectF
	Scored bool
}

// Snapshot is a read-only view of one frame for presenters.
type Snapshot struct {
	Phase           Phase
	Bird            core.RectF
	Obstacles       []ObstacleView
	Score           int
	LastScore       int
	GameOverVisible bool
	Area            Area
	Frame           int
}

// Snapshot copies the current state into a Snapshot.
func (e *Engine) Snapshot() Snapshot {
	width := e.field.Width()
	views := make([]ObstacleView, 0, e.field.Len())
	for _, o := range e.field.Obstacles() {
		views = append(views, ObstacleView{
			Top:    o.TopRect(width),
			Bottom: o.BottomRect(width, e.area.Height),
			Scored: o.Scored,
		})
	}

	return Snapshot{
		Phase:           e.phase,
		Bird:            e.bird.Rect(),
		Obstacles:       views,
		Score:           e.score.Value(),
		LastScore:       e.lastScore,
		GameOverVisible: e.gameOverShown,
		Area:            e.area,
		Frame:           e.frame,
	}
}
