/*
Package cliparse reads the server configuration from command line flags
with environment variable fallback. A .env file in the working directory
is honored (via github.com/joho/godotenv), matching how the deploy
scripts provide secrets in development.

Required: a database URL (-d / DATABASE_URL), the public web URL used to
build share links (-web-url / WEB_URL), and the Telegram bot token
(-token / BOT_TOKEN, env strongly preferred). The database type defaults
to sqlite; admin IDs are optional and gate the dump endpoint.
*/
package cliparse
