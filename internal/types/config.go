package types

type RunMode string

const (
	// ModeLocal runs the API server and the webhook consumer in one process
	ModeLocal RunMode = "local"
	// ModeAPI runs just the API server
	ModeAPI RunMode = "api"
	// ModeConsumer runs just the webhook consumer
	ModeConsumer RunMode = "consumer"
	// ModeAWSLambdaAPI runs the API server in AWS Lambda
	ModeAWSLambdaAPI RunMode = "aws_lambda_api"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
)
