package catalog

var products = []Product{
	{ID: 1, Name: "3D Printed Model 1", Price: "179.00", Image: "/Shopping_images/42.jpg", Description: "Lighting fixture component", Category: Category3DPrinting},
	{ID: 2, Name: "3D Printed Model 2", Price: "99.00", Image: "/Shopping_images/15.jpg", Description: "Medical device prototype for testing", Category: CategoryPrototyping},
	{ID: 3, Name: "3D Printed Model 3", Price: "225.00", Image: "/Shopping_images/7.png", Description: "Complex geometry design with smooth surface finish", Category: CategoryDesignServices},
	{ID: 4, Name: "3D Printed Model 4", Price: "135.00", Image: "/Shopping_images/28.jpg", Description: "Professional-grade prototype model", Category: CategoryPrototyping},
	{ID: 5, Name: "3D Printed Model 5", Price: "89.00", Image: "/Shopping_images/51.jpg", Description: "Mechanical gear assembly", Category: Category3DPrinting},
	{ID: 6, Name: "3D Printed Model 6", Price: "199.00", Image: "/Shopping_images/3.jpg", Description: "Advanced functional prototype with detailed finishing", Category: CategoryPrototyping},
	{ID: 7, Name: "3D Printed Model 7", Price: "145.00", Image: "/Shopping_images/36.jpg", Description: "Office organizer with modular design", Category: CategoryDesignServices},
	{ID: 8, Name: "3D Printed Model 8", Price: "119.00", Image: "/Shopping_images/19.jpg", Description: "Mechanical assembly component", Category: Category3DPrinting},
	{ID: 9, Name: "3D Printed Model 9", Price: "169.00", Image: "/Shopping_images/8.png", Description: "Multi-material composite 3D printed part", Category: Category3DPrinting},
	{ID: 10, Name: "3D Printed Model 10", Price: "95.00", Image: "/Shopping_images/44.jpg", Description: "Toy component for educational kits", Category: CategoryDesignServices},
	{ID: 11, Name: "3D Printed Model 11", Price: "209.00", Image: "/Shopping_images/11.jpg", Description: "Industrial-grade functional prototype", Category: CategoryPrototyping},
	{ID: 12, Name: "3D Printed Model 12", Price: "129.00", Image: "/Shopping_images/24.jpg", Description: "Custom jig for manufacturing", Category: Category3DPrinting},
	{ID: 13, Name: "3D Printed Model 13", Price: "159.00", Image: "/Shopping_images/47.jpg", Description: "Art installation piece", Category: CategoryDesignServices},
	{ID: 14, Name: "3D Printed Model 14", Price: "79.00", Image: "/Shopping_images/5.jpg", Description: "Precision-crafted model for testing and validation", Category: CategoryPrototyping},
	{ID: 15, Name: "3D Printed Model 15", Price: "189.00", Image: "/Shopping_images/33.jpg", Description: "Sports equipment component", Category: Category3DPrinting},
	{ID: 16, Name: "3D Printed Model 16", Price: "109.00", Image: "/Shopping_images/16.jpg", Description: "Automotive part replacement solution", Category: CategoryPrototyping},
	{ID: 17, Name: "3D Printed Model 17", Price: "215.00", Image: "/Shopping_images/50.jpg", Description: "Architectural detail element", Category: CategoryDesignServices},
	{ID: 18, Name: "3D Printed Model 18", Price: "99.00", Image: "/Shopping_images/1.jpg", Description: "High-quality 3D printed product with precision engineering", Category: Category3DPrinting},
	{ID: 19, Name: "3D Printed Model 19", Price: "175.00", Image: "/Shopping_images/26.jpg", Description: "Drone component with lightweight design", Category: CategoryPrototyping},
	{ID: 20, Name: "3D Printed Model 20", Price: "125.00", Image: "/Shopping_images/39.jpg", Description: "Musical instrument part", Category: CategoryDesignServices},
	{ID: 21, Name: "3D Printed Model 21", Price: "149.00", Image: "/Shopping_images/2.jpg", Description: "Custom designed prototype for industrial applications", Category: CategoryPrototyping},
	{ID: 22, Name: "3D Printed Model 22", Price: "185.00", Image: "/Shopping_images/48.jpg", Description: "Scientific equipment component", Category: Category3DPrinting},
	{ID: 23, Name: "3D Printed Model 23", Price: "92.00", Image: "/Shopping_images/12.jpg", Description: "Educational model for STEM learning", Category: CategoryDesignServices},
	{ID: 24, Name: "3D Printed Model 24", Price: "139.00", Image: "/Shopping_images/37.jpg", Description: "Pet accessory with durable material", Category: Category3DPrinting},
	{ID: 25, Name: "3D Printed Model 25", Price: "205.00", Image: "/Shopping_images/20.jpg", Description: "Premium quality display model", Category: CategoryDesignServices},
	{ID: 26, Name: "3D Printed Model 26", Price: "115.00", Image: "/Shopping_images/45.jpg", Description: "Bicycle accessory with custom fit", Category: Category3DPrinting},
	{ID: 27, Name: "3D Printed Model 27", Price: "169.00", Image: "/Shopping_images/10.jpg", Description: "High-resolution miniature with intricate details", Category: Category3DPrinting},
	{ID: 28, Name: "3D Printed Model 28", Price: "99.00", Image: "/Shopping_images/34.jpg", Description: "Kitchen gadget with practical design", Category: CategoryDesignServices},
	{ID: 29, Name: "3D Printed Model 29", Price: "155.00", Image: "/Shopping_images/23.jpg", Description: "Engineering test fixture", Category: CategoryPrototyping},
	{ID: 30, Name: "3D Printed Model 30", Price: "89.00", Image: "/Shopping_images/6.png", Description: "Affordable rapid prototyping solution", Category: CategoryPrototyping},
	{ID: 31, Name: "3D Printed Model 31", Price: "195.00", Image: "/Shopping_images/43.jpg", Description: "Furniture connector with strong build", Category: Category3DPrinting},
	{ID: 32, Name: "3D Printed Model 32", Price: "129.00", Image: "/Shopping_images/17.jpg", Description: "Consumer product prototype with ergonomic design", Category: CategoryPrototyping},
	{ID: 33, Name: "3D Printed Model 33", Price: "179.00", Image: "/Shopping_images/30.jpg", Description: "Electronics enclosure with ventilation", Category: CategoryDesignServices},
	{ID: 34, Name: "3D Printed Model 34", Price: "105.00", Image: "/Shopping_images/52.jpg", Description: "Custom badge with logo design", Category: CategoryDesignServices},
	{ID: 35, Name: "3D Printed Model 35", Price: "149.00", Image: "/Shopping_images/9.jpg", Description: "Lightweight structural component for aerospace", Category: CategoryPrototyping},
	{ID: 36, Name: "3D Printed Model 36", Price: "219.00", Image: "/Shopping_images/35.jpg", Description: "Collectible figurine with high detail", Category: Category3DPrinting},
	{ID: 37, Name: "3D Printed Model 37", Price: "85.00", Image: "/Shopping_images/14.jpg", Description: "Customizable design for personal projects", Category: CategoryDesignServices},
	{ID: 38, Name: "3D Printed Model 38", Price: "165.00", Image: "/Shopping_images/41.jpg", Description: "Camera mount for photography", Category: Category3DPrinting},
	{ID: 39, Name: "3D Printed Model 39", Price: "139.00", Image: "/Shopping_images/4.jpg", Description: "Durable engineering-grade 3D printed component", Category: Category3DPrinting},
	{ID: 40, Name: "3D Printed Model 40", Price: "199.00", Image: "/Shopping_images/27.jpg", Description: "Robotics part for DIY projects", Category: CategoryPrototyping},
	{ID: 41, Name: "3D Printed Model 41", Price: "109.00", Image: "/Shopping_images/49.jpg", Description: "Cosplay prop with detailed finish", Category: CategoryDesignServices},
	{ID: 42, Name: "3D Printed Model 42", Price: "175.00", Image: "/Shopping_images/18.jpg", Description: "Artistic sculpture with complex curves", Category: CategoryDesignServices},
	{ID: 43, Name: "3D Printed Model 43", Price: "95.00", Image: "/Shopping_images/31.jpg", Description: "Jewelry piece with intricate patterns", Category: CategoryDesignServices},
	{ID: 44, Name: "3D Printed Model 44", Price: "189.00", Image: "/Shopping_images/22.jpg", Description: "Decorative item with smooth finish", Category: Category3DPrinting},
	{ID: 45, Name: "3D Printed Model 45", Price: "125.00", Image: "/Shopping_images/46.jpg", Description: "Wearable tech housing", Category: Category3DPrinting},
	{ID: 46, Name: "3D Printed Model 46", Price: "159.00", Image: "/Shopping_images/13.jpg", Description: "Architectural scale model with fine details", Category: CategoryDesignServices},
	{ID: 47, Name: "3D Printed Model 47", Price: "135.00", Image: "/Shopping_images/38.jpg", Description: "Garden tool with ergonomic grip", Category: Category3DPrinting},
	{ID: 48, Name: "3D Printed Model 48", Price: "209.00", Image: "/Shopping_images/21.jpg", Description: "Functional tool for workshop use", Category: CategoryPrototyping},
	{ID: 49, Name: "3D Printed Model 49", Price: "119.00", Image: "/Shopping_images/32.jpg", Description: "Fashion accessory with modern design", Category: CategoryDesignServices},
	{ID: 50, Name: "3D Printed Model 50", Price: "145.00", Image: "/Shopping_images/25.jpg", Description: "Replacement part for home appliances", Category: Category3DPrinting},
	{ID: 51, Name: "3D Printed Model 51", Price: "169.00", Image: "/Shopping_images/40.jpg", Description: "Phone stand with adjustable angle", Category: CategoryDesignServices},
}
