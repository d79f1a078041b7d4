package layout

import "github.com/golang/geo/s1"

// LabelRotation returns the text rotation in degrees for a label at the
// slot center angleDeg (unrotated). Labels run along the radius; those
// on the half that would read upside down are turned by 180°.
func LabelRotation(angleDeg float64) float64 {
	r := angleDeg + ThetaOffsetDeg
	if r < 270 {
		return r + 180
	}
	return r
}

// LabelAngle is LabelRotation as an angle.
func (s Slot) LabelAngle() s1.Angle {
	return s1.Angle(LabelRotation(s.AngleDeg)) * s1.Degree
}
