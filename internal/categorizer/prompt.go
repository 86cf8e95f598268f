package categorizer

import (
	"fmt"

	"fjacquet/bill-csv/internal/models"
)

const promptTemplate = `你是一个财经助手，需要根据一条交易记录判断它属于以下分类中的哪一类，只能选择一个：
0. 收入
1. 餐饮：吃饭、外卖、咖啡、零食
2. 交通：打车、地铁、公交、油费
3. 居住：房租、水电燃气、物业
4. 购物：衣服、日用品、电子产品
5. 娱乐：电影、游戏、旅游、会员
6. 其他：无法归类的支出或其他类型

category_name 字段必须严格等于以下标签之一：收入、餐饮、交通、居住、购物、娱乐、其他。
请只返回 JSON 字符串，格式如下：{"category_id":<数字>,"category_name":"<分类名称>","reason":"<简短原因>"}。
交易信息：
- 交易时间：%s
- 交易对方：%s
- 交易类型：%s
- 描述：%s
- 金额：%s
`

// BuildPrompt renders the classification prompt for tx.
func BuildPrompt(tx models.Transaction) string {
	return fmt.Sprintf(promptTemplate,
		tx.TransactionTime,
		tx.Counterparty,
		tx.TransactionType,
		tx.Description,
		tx.Amount)
}
