package testcontainers

// Environment variables read by integration suites to tune the MongoDB container.
const (
	MongoImageNameKey = "MONGO_IMAGE_NAME"
	MongoDatabaseKey  = "MONGO_DATABASE"

	DefaultMongoImage = "mongo:8.0"
)
