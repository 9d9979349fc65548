// @title           ScholarAI API
// @version         1.0
// @description     Document ingestion and retrieval-augmented study tools: ask, summarize, flashcards and quizzes over uploaded documents.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email   zachary.jolliff15@gmail.com

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package utils

//pdf extraction needs poppler-utils on PATH
//apt-get install poppler-utils

//swagger init
//swag init -g cmd/api/main.go --parseDependency --parseInternal --dir ./ --output ./cmd/api/docs
