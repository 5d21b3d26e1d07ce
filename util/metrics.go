package util

// MetricsBucketsMicroSeconds defines histogram buckets for microsecond-level latency measurements.
// Buckets range from 128μs to 262ms in exponential progression.
var MetricsBucketsMicroSeconds = []float64{
	128e-6, 256e-6, 512e-6, 1024e-6, 2048e-6, 4096e-6, 8192e-6, 16384e-6, 32768e-6, 65536e-6, 131072e-6, 262144e-6,
}
