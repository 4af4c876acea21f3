package model

// ObstacleType distinguishes footprint and corridor obstacles in audit reports.
type ObstacleType string

const (
	ObstacleFootprint ObstacleType = "footprint"
	ObstacleCorridor  ObstacleType = "corridor"
)

// ClearanceViolation describes a stored placement point that no longer clears an obstacle.
type ClearanceViolation struct {
	PointIndex    int          `json:"point_index"`
	Point         Point2D      `json:"point"`
	Kind          string       `json:"kind,omitempty"`
	ObstacleType  ObstacleType `json:"obstacle_type"`
	ObstacleIndex int          `json:"obstacle_index"`
	ObstacleLabel string       `json:"obstacle_label"`
	Distance      float64      `json:"distance"` // distance to the obstacle edge, 0 when inside
}
