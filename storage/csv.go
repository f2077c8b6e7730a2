package storage

// facilityColumns is the CSV layout shared by the CSV provider and the
// result exporter. List values are joined with listSeparator.
var facilityColumns = []string{
	"id", "name", "description", "address", "city", "state", "zip_code", "county",
	"latitude", "longitude", "phone", "website", "rating", "review_count",
	"tuition", "hours", "age_range", "curriculum", "program_type",
	"license_number", "capacity", "data_source", "features", "images",
}

const listSeparator = "|"
