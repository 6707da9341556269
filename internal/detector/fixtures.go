package detector

// Canonical right-hand poses, one per gesture symbol. Each fixture satisfies
// exactly one of the geometric gesture predicates.

func rightHand() HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}
	lm.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}
	return lm
}

// OpenPalmLandmarks returns a preset HandLandmarks representing an open palm gesture.
// All fingers are extended and the thumb is spread away from the palm.
func OpenPalmLandmarks() HandLandmarks {
	lm := rightHand()

	lm.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	lm.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	lm.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	lm.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	lm.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68}
	lm.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55}
	lm.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45}
	lm.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35}

	lm.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66}
	lm.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52}
	lm.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40}
	lm.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28}

	lm.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68}
	lm.Points[RingPIP] = Point3D{X: 0.43, Y: 0.55}
	lm.Points[RingDIP] = Point3D{X: 0.42, Y: 0.45}
	lm.Points[RingTip] = Point3D{X: 0.42, Y: 0.35}

	lm.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70}
	lm.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60}
	lm.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50}
	lm.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42}

	return lm
}

// PeaceLandmarks returns a V sign: index and middle extended, ring and pinky
// curled with the thumb resting over them.
func PeaceLandmarks() HandLandmarks {
	lm := rightHand()

	lm.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.76, Z: 0.01}
	lm.Points[ThumbMCP] = Point3D{X: 0.56, Y: 0.70, Z: -0.02}
	lm.Points[ThumbIP] = Point3D{X: 0.52, Y: 0.66, Z: -0.04}
	lm.Points[ThumbTip] = Point3D{X: 0.47, Y: 0.66, Z: -0.05}

	lm.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.66}
	lm.Points[IndexPIP] = Point3D{X: 0.58, Y: 0.53}
	lm.Points[IndexDIP] = Point3D{X: 0.60, Y: 0.44}
	lm.Points[IndexTip] = Point3D{X: 0.62, Y: 0.35}

	lm.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.65}
	lm.Points[MiddlePIP] = Point3D{X: 0.49, Y: 0.51}
	lm.Points[MiddleDIP] = Point3D{X: 0.48, Y: 0.41}
	lm.Points[MiddleTip] = Point3D{X: 0.47, Y: 0.31}

	lm.Points[RingMCP] = Point3D{X: 0.45, Y: 0.67, Z: -0.02}
	lm.Points[RingPIP] = Point3D{X: 0.45, Y: 0.63, Z: -0.05}
	lm.Points[RingDIP] = Point3D{X: 0.44, Y: 0.67, Z: -0.04}
	lm.Points[RingTip] = Point3D{X: 0.44, Y: 0.70, Z: -0.02}

	lm.Points[PinkyMCP] = Point3D{X: 0.41, Y: 0.70, Z: -0.02}
	lm.Points[PinkyPIP] = Point3D{X: 0.41, Y: 0.67, Z: -0.05}
	lm.Points[PinkyDIP] = Point3D{X: 0.40, Y: 0.70, Z: -0.04}
	lm.Points[PinkyTip] = Point3D{X: 0.40, Y: 0.73, Z: -0.02}

	return lm
}

// FistLandmarks returns a closed fist with the thumb tucked across the fingers,
// close to the wrist horizontally and neither above nor below the knuckles.
func FistLandmarks() HandLandmarks {
	lm := rightHand()

	lm.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.01}
	lm.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.68, Z: -0.02}
	lm.Points[ThumbIP] = Point3D{X: 0.57, Y: 0.60, Z: -0.04}
	lm.Points[ThumbTip] = Point3D{X: 0.53, Y: 0.62, Z: -0.05}

	lm.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.66, Z: -0.02}
	lm.Points[IndexPIP] = Point3D{X: 0.55, Y: 0.62, Z: -0.05}
	lm.Points[IndexDIP] = Point3D{X: 0.53, Y: 0.66, Z: -0.04}
	lm.Points[IndexTip] = Point3D{X: 0.52, Y: 0.69, Z: -0.02}

	lm.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.65, Z: -0.02}
	lm.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.61, Z: -0.05}
	lm.Points[MiddleDIP] = Point3D{X: 0.48, Y: 0.65, Z: -0.04}
	lm.Points[MiddleTip] = Point3D{X: 0.47, Y: 0.68, Z: -0.02}

	lm.Points[RingMCP] = Point3D{X: 0.45, Y: 0.67, Z: -0.02}
	lm.Points[RingPIP] = Point3D{X: 0.45, Y: 0.63, Z: -0.05}
	lm.Points[RingDIP] = Point3D{X: 0.43, Y: 0.67, Z: -0.04}
	lm.Points[RingTip] = Point3D{X: 0.42, Y: 0.70, Z: -0.02}

	lm.Points[PinkyMCP] = Point3D{X: 0.41, Y: 0.70, Z: -0.02}
	lm.Points[PinkyPIP] = Point3D{X: 0.41, Y: 0.67, Z: -0.05}
	lm.Points[PinkyDIP] = Point3D{X: 0.39, Y: 0.70, Z: -0.04}
	lm.Points[PinkyTip] = Point3D{X: 0.38, Y: 0.73, Z: -0.02}

	return lm
}

// OneFingerLandmarks returns a raised index finger with the other fingers curled.
func OneFingerLandmarks() HandLandmarks {
	lm := FistLandmarks()

	lm.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.66}
	lm.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.53}
	lm.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.43}
	lm.Points[IndexTip] = Point3D{X: 0.58, Y: 0.33}

	return lm
}

// ThumbsUpLandmarks returns a preset HandLandmarks representing a thumbs up gesture.
// The thumb points up above the index knuckle while other fingers are curled.
func ThumbsUpLandmarks() HandLandmarks {
	lm := FistLandmarks()

	lm.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.75}
	lm.Points[ThumbMCP] = Point3D{X: 0.60, Y: 0.62}
	lm.Points[ThumbIP] = Point3D{X: 0.62, Y: 0.50}
	lm.Points[ThumbTip] = Point3D{X: 0.62, Y: 0.35}

	return lm
}

// ThumbsDownLandmarks returns a thumbs down gesture: the thumb points down,
// below both its IP joint and the index knuckle, with other fingers curled.
func ThumbsDownLandmarks() HandLandmarks {
	lm := FistLandmarks()

	lm.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.74}
	lm.Points[ThumbMCP] = Point3D{X: 0.59, Y: 0.78}
	lm.Points[ThumbIP] = Point3D{X: 0.60, Y: 0.84}
	lm.Points[ThumbTip] = Point3D{X: 0.60, Y: 0.92}

	return lm
}
