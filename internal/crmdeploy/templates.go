package crmdeploy

// Compiled-in defaults for the generated files. A file with the same relative
// name in the templates dir overrides the default.
var builtinTemplates = map[string]string{
	"systemd/gunicorn.socket": `[Unit]
Description={{.Project}} gunicorn socket

[Socket]
ListenStream={{.SocketPath}}
SocketUser={{.User}}
SocketGroup={{.Group}}
SocketMode=0660

[Install]
WantedBy=sockets.target
`,

	"systemd/gunicorn.service": `[Unit]
Description={{.Project}} gunicorn daemon
Requires={{.Project}}-gunicorn.socket
After=network.target

[Service]
User={{.User}}
Group={{.Group}}
RuntimeDirectory={{.Project}}
WorkingDirectory={{.ProjectDir}}
EnvironmentFile=-{{.ProjectDir}}/.env
ExecStart={{.VenvDir}}/bin/gunicorn --workers {{.Workers}} --bind unix:{{.SocketPath}} {{.WSGIModule}}
Restart=on-failure
RestartSec=5

[Install]
WantedBy=multi-user.target
`,

	"systemd/daphne.service": `[Unit]
Description={{.Project}} daphne ASGI daemon
After=network.target

[Service]
User={{.User}}
Group={{.Group}}
WorkingDirectory={{.ProjectDir}}
EnvironmentFile=-{{.ProjectDir}}/.env
ExecStart={{.VenvDir}}/bin/daphne -b {{.ASGIHost}} -p {{.ASGIPort}} {{.ASGIModule}}
Restart=on-failure
RestartSec=5

[Install]
WantedBy=multi-user.target
`,

	"nginx/site.conf": `server {
    listen 80;
    server_name {{.Domain}};

    client_max_body_size 25m;

    location /static/ {
        alias {{.StaticRoot}}/;
    }

    location /media/ {
        alias {{.MediaRoot}}/;
    }
{{if .ASGI}}
    location /ws/ {
        proxy_pass http://{{.ASGIHost}}:{{.ASGIPort}};
        proxy_http_version 1.1;
        proxy_set_header Upgrade $http_upgrade;
        proxy_set_header Connection "upgrade";
        proxy_set_header Host $host;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
    }
{{end}}
    location / {
        proxy_pass http://unix:{{.SocketPath}};
        proxy_set_header Host $host;
        proxy_set_header X-Real-IP $remote_addr;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
        proxy_set_header X-Forwarded-Proto $scheme;
    }
}
`,
}
