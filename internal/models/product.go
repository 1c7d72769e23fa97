// internal/models/product.go
package models

type Category struct {
	BaseModel
	Name        string `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Description string `json:"description" gorm:"type:text"`
	ImageURL    string `json:"image_url" gorm:"size:500"`
	IsActive    bool   `json:"is_active" gorm:"default:true;index"`
}

type Product struct {
	BaseModel
	SellerID      int64      `json:"seller_id" gorm:"not null;index"`
	CategoryID    int64      `json:"category_id" gorm:"not null;index"`
	Name          string     `json:"name" gorm:"size:255;not null"`
	Description   string     `json:"description" gorm:"type:text"`
	Price         float64    `json:"price" gorm:"type:decimal(10,2);not null"`
	OriginalPrice float64    `json:"original_price" gorm:"type:decimal(10,2)"`
	Conditions    string     `json:"conditions" gorm:"size:50;default:'good'"`
	Size          string     `json:"size" gorm:"size:50"`
	Color         string     `json:"color" gorm:"size:50"`
	Brand         string     `json:"brand" gorm:"size:100"`
	Material      string     `json:"material" gorm:"size:100"`
	StockQuantity int        `json:"stock_quantity" gorm:"default:1"`
	IsActive      bool       `json:"is_active" gorm:"default:true;index"`
	Featured      bool       `json:"featured" gorm:"default:false;index"`
	ViewCount     int64      `json:"view_count" gorm:"default:0"`
	Images        StringList `json:"images" gorm:"type:text"`
	Videos        StringList `json:"videos" gorm:"type:text"`

	// Relationships
	Seller   Seller         `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	Category Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Media    []ProductMedia `json:"media,omitempty" gorm:"foreignKey:ProductID"`
}

// ProductMedia is one uploaded image or video attached to a product.
// At most one item per product may be primary at any time.
type ProductMedia struct {
	BaseModel
	ProductID    int64     `json:"product_id" gorm:"not null;index"`
	MediaType    MediaType `json:"media_type" gorm:"type:varchar(10);not null"`
	FileURL      string    `json:"file_url" gorm:"size:500;not null"`
	FileName     string    `json:"file_name" gorm:"size:255"`
	FileSize     int64     `json:"file_size"`
	MimeType     string    `json:"mime_type" gorm:"size:100"`
	AltText      string    `json:"alt_text" gorm:"size:255"`
	Caption      string    `json:"caption" gorm:"size:500"`
	SortOrder    int       `json:"sort_order" gorm:"default:0"`
	IsPrimary    bool      `json:"is_primary" gorm:"default:false"`
	UploaderID   int64     `json:"uploader_id"`
	UploaderType ActorType `json:"uploader_type" gorm:"type:varchar(10);default:'seller'"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
