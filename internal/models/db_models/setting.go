package db_models

type Setting struct {
	BaseModel
	Key   string `gorm:"uniqueIndex"`
	Value string
}
