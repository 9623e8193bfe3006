package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
)

// 向后台 API 批量导入演示商品，方便本地联调

type ProductRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

func main() {
	adminURL := flag.String("admin", "http://localhost:8081/api", "后台 API 地址")
	flag.Parse()

	products := []ProductRequest{
		{"Joeby Tailored Trouser", "经典剪裁长裤，舒适面料，适合日常穿着。", 17.99, "/assets/img/shop/product_1.jpg"},
		{"Denim Hooded", "牛仔连帽衫，时尚百搭，适合休闲场合。", 30.00, "/assets/img/shop/product_2.jpg"},
		{"Mint Maxi Dress", "薄荷绿长款连衣裙，优雅大方，适合多种场合。", 17.99, "/assets/img/shop/product_3.jpg"},
		{"White Flounce Dress", "白色荷叶边连衣裙，清新甜美，展现女性魅力。", 15.99, "/assets/img/shop/product_4.jpg"},
		{"Classic White Shirt", "经典白色衬衫，百搭单品，职场必备。", 19.99, "/assets/img/shop/product_5.jpg"},
		{"Casual Denim Jacket", "休闲牛仔夹克，经典款式，四季可穿。", 25.00, "/assets/img/shop/product_6.jpg"},
		{"Elegant Blouse", "优雅女士衬衫，精致剪裁，展现知性美。", 22.00, "/assets/img/shop/product_7.jpg"},
		{"Stylish T-Shirt", "时尚T恤，舒适面料，休闲百搭。", 12.99, "/assets/img/shop/product_8.jpg"},
		{"Men's Belt", "男士皮带，真皮材质，经典设计。", 9.90, "/assets/img/shop/product_9.jpg"},
		{"Sport Hi Adidas", "阿迪达斯运动鞋，舒适透气，适合运动健身。", 29.00, "/assets/img/shop/product_10.jpg"},
		{"Leather Handbag", "真皮手提包，精致工艺，时尚优雅。", 35.00, "/assets/img/shop/product_11.jpg"},
		{"Designer Sunglasses", "设计师太阳镜，防紫外线，时尚潮流。", 18.00, "/assets/img/shop/product_12.jpg"},
	}

	client := &http.Client{}
	successCount := 0
	failCount := 0

	for i, p := range products {
		jsonData, err := json.Marshal(p)
		if err != nil {
			fmt.Printf("❌ 商品 %d: JSON 序列化失败: %v\n", i+1, err)
			failCount++
			continue
		}

		resp, err := client.Post(*adminURL+"/products", "application/json", bytes.NewBuffer(jsonData))
		if err != nil {
			fmt.Printf("❌ 商品 %d (%s): 请求失败: %v\n", i+1, p.Title, err)
			failCount++
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			fmt.Printf("❌ 商品 %d (%s) 添加失败: %s\n", i+1, p.Title, string(body))
			failCount++
			continue
		}

		var created struct {
			ID int64 `json:"id"`
		}
		_ = json.Unmarshal(body, &created)
		fmt.Printf("✅ 商品 %d (%s) - $%.2f 添加成功 (ID: %d)\n", i+1, p.Title, p.Price, created.ID)
		successCount++
	}

	fmt.Printf("\n📊 导入总结: 成功 %d 个, 失败 %d 个\n", successCount, failCount)
}
