package scoring

// Backend produces a class-probability distribution for one feature vector,
// ordered Graduate/Dropout/Enrolled.
type Backend interface {
	PredictProba(features []float64) ([]float64, error)
	NumFeatures() int
}
