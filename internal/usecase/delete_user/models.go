package delete_user

// Request модель запроса на удаление пользователя
type Request struct {
	UserID int64
}

// Response сколько строк удалено в каждой таблице
type Response struct {
	UserID            int64
	ReviewsDeleted    int64
	BookingsDeleted   int64
	PropertiesDeleted int64
}
