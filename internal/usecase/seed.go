package usecase

import "github.com/yourusername/storefront/internal/domain/entity"

// DemoProducts saqlangan katalog bo'lmaganda ishlatiladigan 12 ta mahsulot
func DemoProducts() []entity.Product {
	return []entity.Product{
		{ID: 1, Name: "Wireless Headphones", Price: 79.99, Category: "electronics", Stock: 15,
			Description: "Premium wireless headphones with active noise cancellation and 30-hour battery life",
			Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500&q=80"},
		{ID: 2, Name: "Smart Watch Pro", Price: 199.99, Category: "electronics", Stock: 8,
			Description: "Advanced smartwatch with health tracking, GPS, and fitness features",
			Image:       "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500&q=80"},
		{ID: 3, Name: "Laptop Backpack", Price: 49.99, Category: "accessories", Stock: 20,
			Description: "Durable waterproof backpack with padded laptop compartment up to 17 inches",
			Image:       "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=500&q=80"},
		{ID: 4, Name: "USB-C Fast Cable", Price: 12.99, Category: "accessories", Stock: 50,
			Description: "Fast charging USB-C cable, braided nylon, 6ft long, supports 100W power delivery",
			Image:       "https://images.unsplash.com/photo-1583863788434-e58a36330cf0?w=500&q=80"},
		{ID: 5, Name: "Bluetooth Speaker", Price: 59.99, Category: "electronics", Stock: 12,
			Description: "Portable waterproof Bluetooth speaker with 360-degree sound and 12-hour playtime",
			Image:       "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=500&q=80"},
		{ID: 6, Name: "Phone Case Premium", Price: 19.99, Category: "accessories", Stock: 30,
			Description: "Protective phone case with military-grade drop protection and kickstand",
			Image:       "https://images.unsplash.com/photo-1601784551446-20c9e07cdbdb?w=500&q=80"},
		{ID: 7, Name: "Wireless Mouse", Price: 34.99, Category: "electronics", Stock: 25,
			Description: "Ergonomic wireless mouse with silent clicks and rechargeable battery",
			Image:       "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?w=500&q=80"},
		{ID: 8, Name: "Sunglasses Classic", Price: 89.99, Category: "accessories", Stock: 18,
			Description: "UV400 polarized sunglasses with classic design and premium materials",
			Image:       "https://images.unsplash.com/photo-1572635196237-14b3f281503f?w=500&q=80"},
		{ID: 9, Name: "Mechanical Keyboard", Price: 129.99, Category: "electronics", Stock: 10,
			Description: "RGB mechanical keyboard with cherry switches and aluminum frame",
			Image:       "https://images.unsplash.com/photo-1595225476474-87563907a212?w=500&q=80"},
		{ID: 10, Name: "Leather Wallet", Price: 39.99, Category: "accessories", Stock: 35,
			Description: "Genuine leather bifold wallet with RFID blocking technology",
			Image:       "https://images.unsplash.com/photo-1627123424574-724758594e93?w=500&q=80"},
		{ID: 11, Name: "Webcam HD Pro", Price: 74.99, Category: "electronics", Stock: 14,
			Description: "Full HD 1080p webcam with autofocus and built-in dual microphones",
			Image:       "https://images.unsplash.com/photo-1587825140708-dfaf72ae4b04?w=500&q=80"},
		{ID: 12, Name: "Travel Adapter", Price: 24.99, Category: "accessories", Stock: 40,
			Description: "Universal travel adapter with 4 USB ports, works in 150+ countries",
			Image:       "https://images.unsplash.com/photo-1620221358191-3e8c4a5a1e8e?w=500&q=80"},
	}
}
