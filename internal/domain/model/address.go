package model

// 配送先住所（注文に埋め込む）
type ShippingAddress struct {
	//宛名
	Name string `gorm:"type:varchar(255)" json:"name"`

	//番地など
	Street string `gorm:"type:varchar(255)" json:"street"`

	//市区町村
	City string `gorm:"type:varchar(255)" json:"city"`

	//州・都道府県
	State string `gorm:"type:varchar(100)" json:"state"`

	//郵便番号
	ZipCode string `gorm:"type:varchar(20)" json:"zip_code"`

	Country string `gorm:"type:varchar(100)" json:"country"`
}
