package domain

import "time"

// Property is a single listing row in the Supabase "properties" table.
// Every column other than id, code and created_at is nullable.
type Property struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement;index:idx_properties_created_id,priority:2,sort:desc" json:"id"`
	Code string `gorm:"column:code;type:varchar(32);not null;uniqueIndex:idx_properties_code" json:"code"`

	Location     *string `gorm:"column:location" json:"location"`
	PropertyType *string `gorm:"column:property_type;type:text;index" json:"property_type"`
	DealType     *string `gorm:"column:deal_type;type:text;index" json:"deal_type"`

	Price           *float64 `gorm:"column:price" json:"price"`
	Deposit         *float64 `gorm:"column:deposit" json:"deposit"`
	MonthlyRent     *float64 `gorm:"column:monthly_rent" json:"monthly_rent"`
	Loan            *float64 `gorm:"column:loan" json:"loan"`
	FacilityPremium *float64 `gorm:"column:facility_premium" json:"facility_premium"`

	// Areas are in square metres.
	Area         *float64 `gorm:"column:area" json:"area"`
	LandArea     *float64 `gorm:"column:land_area" json:"land_area"`
	BuildingArea *float64 `gorm:"column:building_area" json:"building_area"`

	PumpCount     *float64 `gorm:"column:pump_count" json:"pump_count"`
	ParkingSpaces *float64 `gorm:"column:parking_spaces" json:"parking_spaces"`

	Floor          *string `gorm:"column:floor" json:"floor"`
	RoomsBathrooms *string `gorm:"column:rooms_bathrooms" json:"rooms_bathrooms"`
	ApprovalDate   *string `gorm:"column:approval_date" json:"approval_date"`
	RoadInfo       *string `gorm:"column:road_info" json:"road_info"`
	Pole           *string `gorm:"column:pole" json:"pole"`
	StorageTank    *string `gorm:"column:storage_tank" json:"storage_tank"`
	SalesVolume    *string `gorm:"column:sales_volume" json:"sales_volume"`
	Features       *string `gorm:"column:features;type:text" json:"features"`

	IsRecommended bool `gorm:"column:is_recommended;not null;default:false" json:"is_recommended"`
	IsUrgent      bool `gorm:"column:is_urgent;not null;default:false" json:"is_urgent"`

	CreatedAt time.Time `gorm:"column:created_at;index:idx_properties_created_id,priority:1,sort:desc" json:"created_at"`
}

func (Property) TableName() string {
	return "properties"
}
