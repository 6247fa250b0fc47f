package linear

// Option configures a LinearRegression
type Option func(*LinearRegression)

// WithFitIntercept sets whether to calculate the intercept
func WithFitIntercept(fit bool) Option {
	return func(lr *LinearRegression) {
		lr.FitIntercept = fit
	}
}

// WithAlpha sets the L2 penalty on the coefficients (the intercept is never penalized)
func WithAlpha(alpha float64) Option {
	return func(lr *LinearRegression) {
		lr.Alpha = alpha
	}
}

// WithNJobs sets the number of parallel jobs used to build the design matrix
func WithNJobs(n int) Option {
	return func(lr *LinearRegression) {
		lr.NJobs = n
	}
}
