package robot

// MotorCalibration holds calibration data for a single motor.
type MotorCalibration struct {
	ID           int `json:"id"`
	DriveMode    int `json:"drive_mode"`
	HomingOffset int `json:"homing_offset"`
	RangeMin     int `json:"range_min"`
	RangeMax     int `json:"range_max"`
}

// Calibration holds calibration data for all motors, keyed by joint name.
type Calibration map[JointName]MotorCalibration

// Normalize converts a raw servo position to a normalized value in the range [-100, 100].
func (c MotorCalibration) Normalize(raw int) float64 {
	rangeSize := float64(c.RangeMax - c.RangeMin)
	if rangeSize == 0 {
		return 0
	}
	return (float64(raw-c.RangeMin)/rangeSize)*200 - 100
}

// Denormalize converts a normalized value [-100, 100] to a raw servo position.
func (c MotorCalibration) Denormalize(norm float64) int {
	rangeSize := float64(c.RangeMax - c.RangeMin)
	return int((norm+100)/200*rangeSize) + c.RangeMin
}

// MotorIDs returns the servo IDs for all joints in the calibration.
func (c Calibration) MotorIDs() []int {
	ids := make([]int, 0, len(c))
	// Use AllJoints() to ensure consistent ordering
	for _, name := range AllJoints() {
		if mc, ok := c[name]; ok {
			ids = append(ids, mc.ID)
		}
	}
	return ids
}

// ByID returns joint name and calibration for a given servo ID.
func (c Calibration) ByID(id int) (JointName, MotorCalibration, bool) {
	for name, mc := range c {
		if mc.ID == id {
			return name, mc, true
		}
	}
	return "", MotorCalibration{}, false
}

// RangeRecorder tracks observed min/max raw positions per joint while the
// operator moves the arm through its range of motion.
type RangeRecorder struct {
	Current map[JointName]int
	Min     map[JointName]int
	Max     map[JointName]int
}

// NewRangeRecorder seeds a recorder with the arm's resting positions.
func NewRangeRecorder(start map[JointName]int) *RangeRecorder {
	r := &RangeRecorder{
		Current: make(map[JointName]int, len(start)),
		Min:     make(map[JointName]int, len(start)),
		Max:     make(map[JointName]int, len(start)),
	}
	for name, pos := range start {
		r.Current[name] = pos
		r.Min[name] = pos
		r.Max[name] = pos
	}
	return r
}

// Observe records a new raw position for a joint, widening its range.
func (r *RangeRecorder) Observe(name JointName, pos int) {
	r.Current[name] = pos
	if pos < r.Min[name] {
		r.Min[name] = pos
	}
	if pos > r.Max[name] {
		r.Max[name] = pos
	}
}

// Calibration builds a Calibration from the recorded ranges, assigning servo
// IDs 1-6 in joint order.
func (r *RangeRecorder) Calibration() Calibration {
	cal := make(Calibration, len(AllJoints()))
	for i, name := range AllJoints() {
		cal[name] = MotorCalibration{
			ID:       i + 1,
			RangeMin: r.Min[name],
			RangeMax: r.Max[name],
		}
	}
	return cal
}
